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
	"os"

	"github.com/fatih/color"
	"github.com/k1LoW/brandeck"
	"github.com/k1LoW/brandeck/config"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "check the environment of brandeck",
	Long:  `check the configuration, the template and its layout table, and the Google Drive credentials.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file
		cmd.Print("🔧 Checking configuration ... ")
		cfg, err := loadConfig()
		if err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			allOK = false
			cfg = config.Default()
		} else {
			green.Println("✓ OK")
		}

		// 2. Check template and layout table
		cmd.Print("📐 Checking template and layout table ... ")
		g, err := brandeck.New(cfg)
		if err == nil {
			_, err = g.Open()
		}
		if err != nil {
			red.Println("✗ NG")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Template: %s\n", cfg.TemplatePath())
		}

		// 3. Check credentials file (optional, upload only)
		cmd.Print("🔍 Checking credentials file ... ")
		credPath := brandeck.CredentialsPath(profile)
		if b, err := os.ReadFile(credPath); err != nil {
			yellow.Println("⚠️ NOT FOUND")
			cmd.Printf("   Expected at: %s (required for `brandeck upload` only)\n", credPath)
		} else if _, err := google.ConfigFromJSON(b, drive.DriveFileScope); err != nil {
			red.Println("✗ INVALID OAUTH CONFIG")
			cmd.Printf("   OAuth configuration error: %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			if _, err := os.Stat(brandeck.TokenPath()); err != nil {
				cmd.Println("   Not authorized yet. The browser opens on the first upload.")
			}
		}

		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use brandeck")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try creating a new outline:")
			yellow.Println("  brandeck new deck.md")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use brandeck properly.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
