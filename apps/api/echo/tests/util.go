package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/warsha/apps/api/echo"
	"github.com/trezcool/warsha/core/lesson"
	"github.com/trezcool/warsha/core/playback"
	"github.com/trezcool/warsha/core/progress"
	"github.com/trezcool/warsha/core/student"
	emailsvc "github.com/trezcool/warsha/services/email"
	inmemrepos "github.com/trezcool/warsha/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testDeps struct {
	lessonRepo   lesson.Repository
	progressRepo progress.Repository
	lessonSvc    *lesson.Service
	progressSvc  *progress.Service
	platform     *fakePlatform
	mgr          *playback.Manager
}

func setup(t *testing.T) (Server, *testDeps) {
	t.Helper()
	emailsvc.ClearSentMessages()

	deps := &testDeps{
		lessonRepo:   inmemrepos.NewLessonRepository(),
		progressRepo: inmemrepos.NewProgressRepository(),
		platform:     newFakePlatform(),
	}
	deps.lessonSvc = lesson.NewService(deps.lessonRepo)
	deps.progressSvc = progress.NewService(deps.progressRepo, deps.lessonSvc)
	deps.mgr = playback.NewManager(playback.Options{
		Platform: deps.platform,
		Logger:   testLogger{},
	})

	app := NewServer(
		&Options{
			DisableReqLogs: true,
			LessonSvc:      deps.lessonSvc,
			ProgressSvc:    deps.progressSvc,
			PlaybackMgr:    deps.mgr,
			EmailSvc:       emailsvc.NewConsoleServiceMock(),
			Logger:         testLogger{},
		},
		nil, /* shutdown */
	)
	t.Cleanup(deps.mgr.CloseAll)
	return app, deps
}

// fakePlatform stands in for the page-global display-capture slot.
type fakePlatform struct {
	capture playback.CaptureFunc
}

func newFakePlatform() *fakePlatform {
	p := &fakePlatform{}
	p.capture = func(ctx context.Context) error { return nil }
	return p
}

func (p *fakePlatform) DisplayCapture() playback.CaptureFunc      { return p.capture }
func (p *fakePlatform) SetDisplayCapture(fn playback.CaptureFunc) { p.capture = fn }
func (p *fakePlatform) attemptCapture() error                     { return p.capture(context.Background()) }

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, std student.Student) string {
	t.Helper()
	claims := GetStudentClaims(std)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
