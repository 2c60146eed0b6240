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
	"github.com/k1LoW/brandeck/pptx"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [SRC] [DST]",
	Short: "convert a .potx template into a .pptx presentation",
	Long: `convert a .potx template into a .pptx presentation.

Only the main part content type is rewritten. A source that already is a
presentation is copied unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		converted, err := pptx.ConvertTemplate(args[0], args[1])
		if err != nil {
			return err
		}
		if converted {
			cmd.Printf("converted %s to %s\n", args[0], args[1])
		} else {
			cmd.Printf("%s is already a presentation, copied to %s\n", args[0], args[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
