package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	TitleFg     tcell.Color
	DomainFg    tcell.Color
	MetaFg      tcell.Color
	RankFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color208, // orange bar
		HeaderFg:    tcell.ColorBlack,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		TitleFg:     tcell.ColorDefault,
		DomainFg:    tcell.ColorLightSlateGray,
		MetaFg:      tcell.Color244,
		RankFg:      tcell.Color244,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
	}
}
