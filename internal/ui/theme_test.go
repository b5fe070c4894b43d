package ui

import "testing"

func TestGetTheme(t *testing.T) {
	dark := GetTheme(true)
	if dark.Name != "Dark" {
		t.Fatalf("dark theme Name = %q, want Dark", dark.Name)
	}
	light := GetTheme(false)
	if light.Name != "Light" {
		t.Fatalf("light theme Name = %q, want Light", light.Name)
	}
	if dark.Background == light.Background {
		t.Fatalf("themes share background %q, want distinct palettes", dark.Background)
	}
}

func TestThemeColorsSet(t *testing.T) {
	for _, theme := range []Theme{GetTheme(true), GetTheme(false)} {
		colors := map[string]string{
			"Background":  theme.Background,
			"Surface":     theme.Surface,
			"Border":      theme.Border,
			"BorderFocus": theme.BorderFocus,
			"SelectionBg": theme.SelectionBg,
			"Text":        theme.Text,
			"Muted":       theme.Muted,
			"Faint":       theme.Faint,
			"Accent":      theme.Accent,
			"Success":     theme.Success,
			"Warning":     theme.Warning,
			"Danger":      theme.Danger,
		}
		for name, value := range colors {
			if value == "" {
				t.Fatalf("%s theme %s is empty", theme.Name, name)
			}
		}
	}
}
