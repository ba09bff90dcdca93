// Package i18n provides the UI string catalogs and language switching.
package i18n

import "sync"

// Lang identifies a supported UI language.
type Lang string

const (
	LangEN Lang = "en"
	LangZH Lang = "zh"
)

var (
	mu      sync.RWMutex
	current = LangEN
)

// SetLanguage switches the active language. Unknown values fall back to
// English.
func SetLanguage(l Lang) {
	if l != LangEN && l != LangZH {
		l = LangEN
	}
	mu.Lock()
	current = l
	mu.Unlock()
}

// Language returns the active language.
func Language() Lang {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// T returns the translation of key in the active language. Missing keys
// fall back to English, then to the key itself.
func T(key string) string {
	mu.RLock()
	lang := current
	mu.RUnlock()

	if s, ok := catalogs[lang][key]; ok {
		return s
	}
	if s, ok := catalogs[LangEN][key]; ok {
		return s
	}
	return key
}

var catalogs = map[Lang]map[string]string{
	LangEN: {
		"app.title":        "Plate Perforator",
		"menu.file":        "File",
		"menu.open":        "Open Image...",
		"menu.export":      "Export SVG...",
		"menu.quit":        "Quit",
		"menu.view":        "View",
		"menu.theme.light": "Light Theme",
		"menu.theme.dark":  "Dark Theme",
		"menu.lang":        "Language",
		"panel.plate":      "Plate",
		"panel.width":      "Width (mm)",
		"panel.height":     "Height (mm)",
		"panel.spacing":    "Spacing (mm)",
		"panel.margin":     "Margin (mm)",
		"panel.minhole":    "Min hole (mm)",
		"panel.maxhole":    "Max hole (mm)",
		"panel.inverted":   "Invert",
		"panel.enhance":    "Enhance source",
		"panel.preset":     "Preset",
		"panel.export":     "Export SVG",
		"status.ready":     "Ready",
		"status.noimage":   "No image loaded",
		"status.generating": "Generating...",
		"status.dots":      "%d dots, mean ⌀ %.2fmm, open area %.1f%%",
		"status.empty":     "Empty pattern (check margin and plate size)",
		"dialog.export.done": "Exported %s",
	},
	LangZH: {
		"app.title":        "打孔板生成器",
		"menu.file":        "文件",
		"menu.open":        "打开图片...",
		"menu.export":      "导出 SVG...",
		"menu.quit":        "退出",
		"menu.view":        "视图",
		"menu.theme.light": "浅色主题",
		"menu.theme.dark":  "深色主题",
		"menu.lang":        "语言",
		"panel.plate":      "板材",
		"panel.width":      "宽度 (mm)",
		"panel.height":     "高度 (mm)",
		"panel.spacing":    "间距 (mm)",
		"panel.margin":     "边距 (mm)",
		"panel.minhole":    "最小孔径 (mm)",
		"panel.maxhole":    "最大孔径 (mm)",
		"panel.inverted":   "反转",
		"panel.enhance":    "增强源图",
		"panel.preset":     "预设",
		"panel.export":     "导出 SVG",
		"status.ready":     "就绪",
		"status.noimage":   "未加载图片",
		"status.generating": "生成中...",
		"status.dots":      "%d 个孔，平均直径 %.2fmm，开孔率 %.1f%%",
		"status.empty":     "空图案（请检查边距和板材尺寸）",
		"dialog.export.done": "已导出 %s",
	},
}
