/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/brandeck/pptx"
	"github.com/spf13/cobra"
)

var lsLayoutsCmd = &cobra.Command{
	Use:   "ls-layouts [TEMPLATE_FILE]",
	Short: "list layouts of the template",
	Long: `list layouts of the template with the index, type and name of their placeholders.

Without an argument the template of the configuration is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.TemplatePath()
		}
		if path == "" {
			return fmt.Errorf("template is required. Pass it as an argument or set template in the config")
		}
		pres, err := pptx.Open(path)
		if err != nil {
			return err
		}
		for _, l := range pres.Layouts() {
			cmd.Printf("%s %s\n", color.CyanString("%d", l.Index), l.Name)
			for _, ph := range l.Placeholders() {
				var note string
				if !l.HasPlaceholder(ph.Idx) {
					note = color.HiBlackString(" (not cloned)")
				}
				cmd.Printf("    idx=%-3d type=%-8s %s%s\n", ph.Idx, ph.Type, strings.TrimSpace(ph.Name), note)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsLayoutsCmd)
}
