package examchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg int // User message accent
	BotMsg  int // Bot message accent
	Error   int // Error messages
	Success int // Completion mark
	Muted   int // Status bar, timestamps, placeholders
	CodeBg  int // Code block background
	Accent  int // Headings, links
	Star    int // Star glyphs
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		BotMsg:  6,
		Error:   1,
		Success: 2,
		Muted:   8,
		CodeBg:  0,
		Accent:  5,
		Star:    3,
	}
}
