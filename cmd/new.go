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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var title string

const markdownScaffold = `---
title: "{{title}}"
subtitle: "Q{{quarter}} update"
closingSubtitle: "Questions?"
variables:
  quarter: 1
---

# Results

Where we are

## Revenue

### Quarter over quarter

Revenue grew for the third quarter in a row.

- New customers
- Expansion in existing accounts
- Lower churn

# Voices
<!-- {"header":"pale"} -->

## Customer feedback

> The onboarding took one afternoon.

-- A happy customer
`

const yamlScaffold = `title: "{{title}}"
subtitle: "Q{{quarter}} update"
closingSubtitle: "Questions?"
variables:
  quarter: 1
sections:
  - name: Results
    subtitle: Where we are
    slides:
      - type: content
        title: Revenue
        subtitle: Quarter over quarter
        intro: Revenue grew for the third quarter in a row.
        bullets:
          - New customers
          - Expansion in existing accounts
          - Lower churn
  - name: Voices
    header: pale
    slides:
      - type: quote
        quote: The onboarding took one afternoon.
        attribution: A happy customer
`

var newCmd = &cobra.Command{
	Use:   "new [OUTLINE_FILE]",
	Short: "create an example outline",
	Long: `create an example outline.

The format follows the extension: .md/.markdown for Markdown, anything else for YAML.
An existing file is never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := args[0]
		b, err := scaffold(f, title)
		if err != nil {
			return err
		}
		if dir := filepath.Dir(f); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		fp, err := os.OpenFile(f, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return err
		}
		defer fp.Close()
		if _, err := fp.Write(b); err != nil {
			return err
		}
		cmd.PrintErrf("Created %s\n", f)
		return nil
	},
}

func scaffold(f, title string) ([]byte, error) {
	if title == "" {
		title = "Untitled deck"
	}
	if strings.ContainsAny(title, "\"\\\n") {
		return nil, fmt.Errorf("title must not contain quotes, backslashes or newlines: %q", title)
	}
	tmpl := yamlScaffold
	switch strings.ToLower(filepath.Ext(f)) {
	case ".md", ".markdown":
		tmpl = markdownScaffold
	}
	return []byte(strings.ReplaceAll(tmpl, "{{title}}", title)), nil
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&title, "title", "", "", "title of the deck")
}
