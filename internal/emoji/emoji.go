// Package emoji maps symbol names to emoji with plain-text fallbacks.
package emoji

import "github.com/yildizm/reqlog/internal/parser"

// [emoji, fallback]
var emojiMap = map[string][2]string{
	"fatal":    {"💀", "[FTL]"},
	"error":    {"❌", "[ERR]"},
	"warning":  {"⚠️", "[WRN]"},
	"info":     {"ℹ️", "[INF]"},
	"debug":    {"🐛", "[DBG]"},
	"unknown":  {"•", "[---]"},
	"success":  {"✅", "[OK]"},
	"search":   {"🔍", "[/]"},
	"request":  {"📨", "[REQ]"},
	"file":     {"📄", "[FILE]"},
	"reload":   {"🔄", "[RLD]"},
	"selected": {"▶", ">"},
	"help":     {"❓", "[?]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForLevel returns the symbol for a severity level
func ForLevel(level parser.LogLevel) string {
	switch level {
	case parser.LevelFatal:
		return GetEmoji("fatal")
	case parser.LevelError:
		return GetEmoji("error")
	case parser.LevelWarn:
		return GetEmoji("warning")
	case parser.LevelInfo:
		return GetEmoji("info")
	case parser.LevelDebug:
		return GetEmoji("debug")
	default:
		return GetEmoji("unknown")
	}
}
