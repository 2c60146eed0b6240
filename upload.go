package brandeck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	pptxMimeType         = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	googleSlidesMimeType = "application/vnd.google-apps.presentation"
)

// Uploader uploads generated decks to Google Drive, converting them to
// Google Slides.
type Uploader struct {
	profile     string
	folderID    string
	sharedDrive bool
	logger      *slog.Logger
	driveSrv    *drive.Service
}

type UploaderOption func(*Uploader) error

func WithUploaderLogger(logger *slog.Logger) UploaderOption {
	return func(u *Uploader) error {
		u.logger = logger
		return nil
	}
}

// WithProfile selects credentials-{profile}.json when it exists.
func WithProfile(profile string) UploaderOption {
	return func(u *Uploader) error {
		u.profile = profile
		return nil
	}
}

// WithFolderID overrides the destination folder of the configuration.
func WithFolderID(id string) UploaderOption {
	return func(u *Uploader) error {
		u.folderID = id
		return nil
	}
}

// WithDriveService uses srv instead of authorizing a new client.
func WithDriveService(srv *drive.Service) UploaderOption {
	return func(u *Uploader) error {
		u.driveSrv = srv
		return nil
	}
}

// NewUploader returns an Uploader, authorizing with the stored OAuth token
// or through the browser when there is none.
func NewUploader(ctx context.Context, cfg *config.Config, opts ...UploaderOption) (_ *Uploader, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.FillDefaults()
	u := &Uploader{
		folderID:    cfg.Upload.FolderID,
		sharedDrive: cfg.Upload.SharedDrive,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}
	if u.driveSrv != nil {
		return u, nil
	}
	if err := u.initialize(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *Uploader) initialize(ctx context.Context) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := os.MkdirAll(config.DataHomePath(), 0700); err != nil {
		return err
	}
	if err := os.MkdirAll(config.StateHomePath(), 0700); err != nil {
		return err
	}
	b, err := os.ReadFile(CredentialsPath(u.profile))
	if err != nil {
		return err
	}
	oc, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return err
	}
	client, err := u.getHTTPClient(ctx, oc)
	if err != nil {
		return err
	}
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}
	srv.UserAgent = userAgent
	u.driveSrv = srv
	return nil
}

// Uploaded is a deck converted to Google Slides.
type Uploaded struct {
	ID  string
	URL string
}

// Upload uploads the deck at path as a new Google Slides presentation named
// after the file.
func (u *Uploader) Upload(ctx context.Context, path string) (_ *Uploaded, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	df := &drive.File{
		Name:     name,
		MimeType: googleSlidesMimeType,
	}
	if u.folderID != "" {
		df.Parents = []string{u.folderID}
	}
	u.logger.Info("uploading deck", slog.String("path", path), slog.String("name", name))
	created, err := u.driveSrv.Files.Create(df).
		Media(f, googleapi.ContentType(pptxMimeType)).
		SupportsAllDrives(u.sharedDrive || u.folderID != "").
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload deck: %w", err)
	}
	url := created.WebViewLink
	if url == "" {
		url = fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit", created.Id)
	}
	u.logger.Info("uploaded deck", slog.String("id", created.Id), slog.String("url", url))
	return &Uploaded{ID: created.Id, URL: url}, nil
}
