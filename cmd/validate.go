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
	"github.com/k1LoW/brandeck"
	"github.com/k1LoW/brandeck/outline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [OUTLINE_FILE]",
	Short: "validate an outline against the config and the template",
	Long: `validate an outline against the config and the template and print the slide plan.

Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var opts []brandeck.Option
		if templatePath != "" {
			opts = append(opts, brandeck.WithTemplate(templatePath))
		}
		g, err := brandeck.New(cfg, opts...)
		if err != nil {
			return err
		}
		o, err := outline.ParseFile(args[0])
		if err != nil {
			return err
		}
		plan, err := g.Plan(o)
		if err != nil {
			return err
		}
		if _, err := g.Open(); err != nil {
			return err
		}
		for _, ps := range plan {
			var flags []string
			if ps.Fixed {
				flags = append(flags, "fixed")
			}
			if ps.Light {
				flags = append(flags, "light")
			}
			line := fmt.Sprintf("%3d %-8s %-14s %s", ps.Number, ps.Kind, ps.Layout, firstLine(ps.Title))
			if len(flags) > 0 {
				line += color.HiBlackString(" [%s]", strings.Join(flags, ","))
			}
			cmd.Println(line)
		}
		for _, w := range o.Lint() {
			cmd.Println(color.YellowString("WARNING: %s", w))
		}
		cmd.Println(color.GreenString("%s: %d slides", args[0], len(plan)))
		return nil
	},
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file (.potx or .pptx), overrides the config")
}
