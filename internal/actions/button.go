// Package actions implements the copy and share controls and their
// transient success/failure affordances.
package actions

// Icon names the glyph a control currently shows.
type Icon string

const (
	IconCopy  Icon = "copy"
	IconShare Icon = "share"
	IconCheck Icon = "check"
	IconCross Icon = "cross"
)

// Control labels.
const (
	LabelCopy        = "Копировать цитату"
	LabelCopied      = "Цитата скопирована"
	LabelShare       = "Поделиться цитатой"
	LabelShareFailed = "Не удалось поделиться"
)

// Button is the display state of a control.
type Button struct {
	Icon     Icon
	Label    string
	Disabled bool
}

func copyButton() Button {
	return Button{Icon: IconCopy, Label: LabelCopy}
}

func shareButton() Button {
	return Button{Icon: IconShare, Label: LabelShare}
}
