// vietkey-tty is a terminal playground for the engine: it reads live key
// events, runs them through the pipeline and mirrors the resulting text on
// one line, the same way a platform shell would splice edits into a text
// field. Esc or Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/eiannone/keyboard"

	"vietkey/internal/config"
	"vietkey/internal/engine"
	"vietkey/internal/keys"
	"vietkey/internal/layout"
	"vietkey/internal/screen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vietkey-tty: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	schemeName := flag.String("scheme", "", fmt.Sprintf("input scheme (%s); overrides the config file", strings.Join(layout.AvailableSchemes(), ", ")))
	configPath := flag.String("config", "", "path to a vietkey.ini config file")
	triggerPath := flag.String("triggers", "", "JSON file with custom trigger overrides")
	traditional := flag.Bool("traditional", false, "use traditional tone placement (hóa instead of hoà)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *schemeName != "" {
		cfg.Scheme = *schemeName
	}
	if *traditional {
		cfg.ToneStyle = "traditional"
	}

	scheme, err := layout.Load(cfg.Scheme)
	if err != nil {
		return err
	}
	if *triggerPath != "" {
		triggers, err := layout.LoadCustomTriggers(*triggerPath)
		if err != nil {
			return err
		}
		if err := layout.ApplyCustomTriggers(scheme, triggers); err != nil {
			return err
		}
	}
	shortcuts, err := cfg.BuildShortcuts()
	if err != nil {
		return err
	}

	eng := engine.New(
		engine.WithMethod(cfg.Method()),
		engine.WithScheme(scheme),
		engine.WithToneStyle(cfg.ModernTone()),
		engine.WithShortcuts(shortcuts),
	)
	eng.SetEnabled(cfg.Enabled)

	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Printf("vietkey-tty — scheme %s, esc to quit\n", scheme.Name())

	var line screen.Line
	redraw := func() {
		fmt.Printf("\r\033[K%s", line.String())
	}
	redraw()

	for {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		switch key {
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			fmt.Println()
			return nil
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			eng.ProcessKey(keys.Delete, false, false, false)
			line.Backspace()
			redraw()
			continue
		case keyboard.KeySpace:
			ch = ' '
		case keyboard.KeyEnter:
			res := eng.ProcessKey(keys.Return, false, false, false)
			line.Apply(res, 0)
			fmt.Println()
			line.Reset()
			redraw()
			continue
		}
		if ch == 0 {
			// Unmapped control keys end the syllable like navigation does.
			eng.ProcessKey(keys.Escape, false, false, false)
			continue
		}
		code, ok := keys.CodeForChar(ch)
		if !ok {
			// Characters outside the engine's keymap still end the
			// syllable and land on screen as-is.
			eng.ProcessKey(keys.Escape, false, false, false)
			line.Insert(string(ch))
			redraw()
			continue
		}
		caps := unicode.IsUpper(ch)
		res := eng.ProcessKey(code, caps, false, caps)
		line.Apply(res, ch)
		redraw()
	}
}
