package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hzcli/internal/deck"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws rows under headers with rounded borders. Short rows are
// padded; aligns applies per column and defaults to left.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(tableRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(tableRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if i < len(aligns) && aligns[i] == alignRight {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func tableRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range width {
		row[i] = ""
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	return row
}

// printJSON writes v to w as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

var wordHeaders = []string{"Word", "Pinyin", "Tone", "Translations", "Note", "Level", "Comment", "Created"}

var wordDetailHeaders = []string{"Field", "Value"}

func renderWords(words map[string]deck.Word) string {
	rows := make([][]string, 0, len(words))
	for _, hw := range deck.SortedHeadwords(words) {
		w := words[hw]
		rows = append(rows, []string{
			hw,
			dash(w.Pinyin),
			dash(w.Tone),
			dash(strings.Join(w.Translations, ", ")),
			dash(w.Note),
			levelLabel(w.Level),
			dash(w.Comment),
			createdLabel(w.CreatedAt),
		})
	}
	return renderTable(wordHeaders, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight})
}

func renderWordDetail(headword string, w deck.Word) string {
	rows := [][]string{
		{"Word", headword},
		{"Pinyin", dash(w.Pinyin)},
		{"Tone", dash(w.Tone)},
		{"Translations", dash(strings.Join(w.Translations, ", "))},
		{"Note", dash(w.Note)},
		{"Example Sentence", dash(w.Sentence)},
		{"Sentence Pinyin", dash(w.SentencePinyin)},
		{"Sentence Translation", dash(w.SentenceTranslation)},
		{"Sentence Definition", dash(w.SentenceDefinition)},
		{"Level", levelLabel(w.Level)},
		{"Comment", dash(w.Comment)},
		{"Created", createdLabel(w.CreatedAt)},
	}
	return renderTable(wordDetailHeaders, rows, nil)
}

func levelLabel(level int) string {
	if level < deck.LevelMin {
		return "-"
	}
	return fmt.Sprintf("%d", level)
}

func createdLabel(value string) string {
	if value == "" {
		return "-"
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return ts.Local().Format("2006-01-02")
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
