package notion

import (
	"time"

	"github.com/jomei/notionapi"
)

// Title builds a title property.
func Title(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Type:  notionapi.PropertyTypeTitle,
		Title: textRuns(s),
	}
}

// RichText builds a rich text property.
func RichText(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		Type:     notionapi.PropertyTypeRichText,
		RichText: textRuns(s),
	}
}

// Number builds a number property.
func Number(v float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{
		Type:   notionapi.PropertyTypeNumber,
		Number: v,
	}
}

// Select builds a select property with a single named option.
func Select(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{
		Type:   notionapi.PropertyTypeSelect,
		Select: notionapi.Option{Name: name},
	}
}

// Date builds a date property starting at t.
func Date(t time.Time) notionapi.DateProperty {
	d := notionapi.Date(t)
	return notionapi.DateProperty{
		Type: notionapi.PropertyTypeDate,
		Date: &notionapi.DateObject{Start: &d},
	}
}

// Notion caps a single text run at 2000 characters.
const maxTextRun = 2000

func textRuns(s string) []notionapi.RichText {
	r := []rune(s)
	runs := make([]notionapi.RichText, 0, len(r)/maxTextRun+1)
	for len(r) > maxTextRun {
		runs = append(runs, textRun(string(r[:maxTextRun])))
		r = r[maxTextRun:]
	}
	return append(runs, textRun(string(r)))
}

func textRun(s string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}
}
