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

	"github.com/k1LoW/brandeck"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var folderID string

var uploadCmd = &cobra.Command{
	Use:   "upload [PPTX_FILE]",
	Short: "upload a deck to Google Drive as Google Slides",
	Long:  `upload a deck to Google Drive, converting it to Google Slides, and print its URL.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := []brandeck.UploaderOption{
			brandeck.WithProfile(profile),
			brandeck.WithUploaderLogger(newLogger(true)),
		}
		if folderID != "" {
			opts = append(opts, brandeck.WithFolderID(folderID))
		}
		u, err := brandeck.NewUploader(ctx, cfg, opts...)
		if err != nil {
			return err
		}
		uploaded, err := u.Upload(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(uploaded.URL)
		if openOutput {
			return browser.OpenURL(uploaded.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVarP(&folderID, "folder-id", "", "", "Google Drive folder ID, overrides the config")
	uploadCmd.Flags().BoolVarP(&openOutput, "open", "", false, "open the uploaded presentation in the browser")
}
