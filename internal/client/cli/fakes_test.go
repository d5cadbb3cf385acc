package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

type fakeClient struct {
	token string

	loginUser string
	loginPass []byte
	loginErr  error

	healthErr error

	me    *models.User
	meErr error

	created   models.EntryInput
	createOut *models.Entry
	createErr error

	listPage, listSize int
	listOut            *models.EntryPage
	listErr            error

	getID  int64
	getOut *models.Entry
	getErr error

	updateID  int64
	updated   models.EntryInput
	updateErr error

	deletedID int64
	deleteErr error

	calStart, calEnd string
	calOut           map[string][]models.Entry
	calErr           error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, u string, p []byte) error {
	f.loginUser, f.loginPass = u, append([]byte(nil), p...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "tok"
	return nil
}
func (f *fakeClient) Logout()                      { f.token = "" }
func (f *fakeClient) IsLoggedIn() bool             { return f.token != "" }
func (f *fakeClient) Health(context.Context) error { return f.healthErr }
func (f *fakeClient) Me(context.Context) (*models.User, error) {
	return f.me, f.meErr
}
func (f *fakeClient) CreateEntry(_ context.Context, in models.EntryInput) (*models.Entry, error) {
	f.created = in
	return f.createOut, f.createErr
}
func (f *fakeClient) ListEntries(_ context.Context, page, size int) (*models.EntryPage, error) {
	f.listPage, f.listSize = page, size
	return f.listOut, f.listErr
}
func (f *fakeClient) GetEntry(_ context.Context, id int64) (*models.Entry, error) {
	f.getID = id
	return f.getOut, f.getErr
}
func (f *fakeClient) UpdateEntry(_ context.Context, id int64, in models.EntryInput) (*models.Entry, error) {
	f.updateID, f.updated = id, in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Entry{ID: id, Content: in.Content, Mood: in.Mood}, nil
}
func (f *fakeClient) DeleteEntry(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeClient) Calendar(_ context.Context, start, end string) (map[string][]models.Entry, error) {
	f.calStart, f.calEnd = start, end
	return f.calOut, f.calErr
}

// newTestApp returns an App reading the given input lines and writing to a buffer.
func newTestApp(fc *fakeClient, lines ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		client: fc,
		reader: bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:    out,
	}, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func ptr[T any](v T) *T { return &v }
