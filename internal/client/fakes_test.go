package client

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/mock"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/tui"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type fakeAuth struct {
	register func(ctx context.Context, req models.RegisterRequest) (models.ClientSession, error)
	login    func(ctx context.Context, req models.LoginRequest) (models.ClientSession, error)
	session  func(ctx context.Context) (models.ClientSession, error)
	logout   func(ctx context.Context) error
}

func (f *fakeAuth) Register(ctx context.Context, req models.RegisterRequest) (models.ClientSession, error) {
	return f.register(ctx, req)
}
func (f *fakeAuth) Login(ctx context.Context, req models.LoginRequest) (models.ClientSession, error) {
	return f.login(ctx, req)
}
func (f *fakeAuth) Session(ctx context.Context) (models.ClientSession, error) { return f.session(ctx) }
func (f *fakeAuth) Logout(ctx context.Context) error                         { return f.logout(ctx) }

type fakeDiary struct {
	unlock         func(ctx context.Context, secret crypto.Secret, remember bool) error
	ensureUnlocked func(ctx context.Context, prompt service.SecretPrompt) error
	lock           func(ctx context.Context) error
	list           func(ctx context.Context) ([]service.DiaryView, error)
	show           func(ctx context.Context, id int64) (service.DiaryView, error)
	write          func(ctx context.Context, title, body string, public bool) (service.DiaryView, error)
	edit           func(ctx context.Context, id int64, title, body string, public bool) (service.DiaryView, error)
	delete         func(ctx context.Context, id int64) error
}

func (f *fakeDiary) Unlock(ctx context.Context, secret crypto.Secret, remember bool) error {
	return f.unlock(ctx, secret, remember)
}
func (f *fakeDiary) EnsureUnlocked(ctx context.Context, prompt service.SecretPrompt) error {
	return f.ensureUnlocked(ctx, prompt)
}
func (f *fakeDiary) Lock(ctx context.Context) error                           { return f.lock(ctx) }
func (f *fakeDiary) List(ctx context.Context) ([]service.DiaryView, error)    { return f.list(ctx) }
func (f *fakeDiary) Show(ctx context.Context, id int64) (service.DiaryView, error) { return f.show(ctx, id) }
func (f *fakeDiary) Write(ctx context.Context, title, body string, public bool) (service.DiaryView, error) {
	return f.write(ctx, title, body, public)
}
func (f *fakeDiary) Edit(ctx context.Context, id int64, title, body string, public bool) (service.DiaryView, error) {
	return f.edit(ctx, id, title, body, public)
}
func (f *fakeDiary) Delete(ctx context.Context, id int64) error { return f.delete(ctx, id) }

type fakeProfile struct {
	setUsername   func(ctx context.Context, username string) error
	publicProfile func(ctx context.Context, username string, page int) (models.PublicProfile, error)
	publicEntry   func(ctx context.Context, username string, id int64) (models.PublicEntry, error)
}

func (f *fakeProfile) SetUsername(ctx context.Context, username string) error {
	return f.setUsername(ctx, username)
}
func (f *fakeProfile) PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error) {
	return f.publicProfile(ctx, username, page)
}
func (f *fakeProfile) PublicEntry(ctx context.Context, username string, id int64) (models.PublicEntry, error) {
	return f.publicEntry(ctx, username, id)
}

type fakeBackup struct {
	export      func(ctx context.Context, w io.Writer) (models.BackupArchive, error)
	upload      func(ctx context.Context, uploader adapter.ArchiveUploader) (string, error)
	readArchive func(r io.Reader) (models.BackupArchive, error)
}

func (f *fakeBackup) Export(ctx context.Context, w io.Writer) (models.BackupArchive, error) {
	return f.export(ctx, w)
}
func (f *fakeBackup) Upload(ctx context.Context, uploader adapter.ArchiveUploader) (string, error) {
	return f.upload(ctx, uploader)
}
func (f *fakeBackup) ReadArchive(r io.Reader) (models.BackupArchive, error) { return f.readArchive(r) }

// harness runs commands against fakes with piped input.
type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer

	auth     *fakeAuth
	diary    *fakeDiary
	profile  *fakeProfile
	backup   *fakeBackup
	server   *mock.MockServerAdapter
	uploader *mock.MockArchiveUploader

	copied     string
	setupCalls int
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		auth:     &fakeAuth{},
		diary:    &fakeDiary{},
		profile:  &fakeProfile{},
		backup:   &fakeBackup{},
		server:   mock.NewMockServerAdapter(ctrl),
		uploader: mock.NewMockArchiveUploader(ctrl),
	}
	h.diary.ensureUnlocked = func(context.Context, service.SecretPrompt) error { return nil }

	app := NewApp(models.NewAppBuildInfo("1.2.0", "2026-01-02", "abc123"), logger.Nop())
	app.in = strings.NewReader(input)
	app.out = h.out
	app.errOut = h.errOut
	app.setup = func(context.Context) error {
		h.setupCalls++
		app.services = &service.ClientServices{
			AuthService:    h.auth,
			DiaryService:   h.diary,
			ProfileService: h.profile,
			BackupService:  h.backup,
		}
		app.server = h.server
		app.ui = tui.New(nil, tui.WithIO(app.in, app.out), tui.WithClipboard(func(s string) error {
			h.copied = s
			return nil
		}))
		app.newUploader = func(context.Context) (adapter.ArchiveUploader, error) { return h.uploader, nil }
		return nil
	}
	h.app = app

	return h
}

func (h *harness) run(args ...string) error {
	return h.app.Run(context.Background(), args)
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	require.NoError(t, h.run(args...))
	return h.out.String()
}
