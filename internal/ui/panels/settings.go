package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mirage/internal/ui/styles"
)

// Setting keys reported in SettingChangedMsg.
const (
	SettingSearchEngine  = "search_url"
	SettingHistoryLimit  = "history_limit"
	SettingProviderModel = "provider_model"
	SettingMarkdownStyle = "markdown_style"
)

type settingItem struct {
	key     string
	label   string
	options []string
	idx     int
}

type settingsState struct {
	items []settingItem
}

func defaultSettings() settingsState {
	return settingsState{items: []settingItem{
		{
			key:   SettingSearchEngine,
			label: "Search engine",
			options: []string{
				"https://www.google.com/search?q=%s",
				"https://duckduckgo.com/?q=%s",
				"https://www.bing.com/search?q=%s",
			},
		},
		{
			key:     SettingHistoryLimit,
			label:   "History limit",
			options: []string{"100", "250", "500", "50"},
		},
		{
			key:     SettingProviderModel,
			label:   "Model",
			options: []string{"gemini-2.5-flash", "gemini-2.5-pro"},
		},
		{
			key:     SettingMarkdownStyle,
			label:   "Page style",
			options: []string{"dark", "light"},
		},
	}}
}

// SyncSettings aligns the displayed values with the loaded configuration.
// Values not among the presets are inserted at the front of their option
// list so they stay selectable.
func (m Model) SyncSettings(searchURL, historyLimit, model, style string) Model {
	current := map[string]string{
		SettingSearchEngine:  searchURL,
		SettingHistoryLimit:  historyLimit,
		SettingProviderModel: model,
		SettingMarkdownStyle: style,
	}

	items := make([]settingItem, len(m.settings.items))
	copy(items, m.settings.items)
	for i := range items {
		val := current[items[i].key]
		if val == "" {
			continue
		}
		found := false
		for j, opt := range items[i].options {
			if opt == val {
				items[i].idx = j
				found = true
				break
			}
		}
		if !found {
			items[i].options = append([]string{val}, items[i].options...)
			items[i].idx = 0
		}
	}
	m.settings = settingsState{items: items}
	return m
}

// cycleSetting advances the selected setting to its next option and
// reports the change.
func (m Model) cycleSetting() (Model, tea.Cmd) {
	if m.selected >= len(m.settings.items) {
		return m, nil
	}

	items := make([]settingItem, len(m.settings.items))
	copy(items, m.settings.items)

	item := &items[m.selected]
	item.idx = (item.idx + 1) % len(item.options)
	m.settings = settingsState{items: items}

	key := item.key
	value := item.options[item.idx]
	return m, func() tea.Msg { return SettingChangedMsg{Key: key, Value: value} }
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(styles.PanelTitleStyle.Render("Settings"))

	for i, item := range m.settings.items {
		b.WriteString("\n")
		line := truncatePad(item.label, 16) + item.options[item.idx]
		if i == m.selected {
			b.WriteString(styles.PanelEntrySelectedStyle.Render("> " + line))
		} else {
			b.WriteString(styles.PanelEntryStyle.Render("  " + line))
		}
	}

	b.WriteString("\n\n" + styles.PanelMetaStyle.Render("enter cycles the highlighted value · changes are saved to the config file"))
	return b.String()
}
