package test

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/reporthub/backend/internal/app"
	"github.com/reporthub/backend/internal/app/appcontext"
	"github.com/reporthub/backend/internal/pkg/projectpath"
)

// testing hooks: https://pkg.go.dev/testing#hdr-Subtests_and_Sub_benchmarks

var (
	gMu       sync.Mutex
	gFiberApp *fiber.App
)

func startup(t *testing.T) {
	t.Helper()

	gMu.Lock()
	defer gMu.Unlock()

	if gFiberApp != nil {
		return
	}

	dataDir, err := os.MkdirTemp("", "reporthub-e2e-*")
	if err != nil {
		t.Fatal(err)
	}
	os.Setenv("REPORTHUB_DATA_FILE", filepath.Join(dataDir, "reports.json"))
	os.Setenv("REPORTHUB_STATIC_DIR", filepath.Join(projectpath.Root, "web", "static"))

	var fiberApp *fiber.App
	fxApp := fxtest.New(t,
		append(app.Options(appcontext.Declare(appcontext.EnvServer)), fx.Populate(&fiberApp))...,
	)
	fxApp.RequireStart()

	gFiberApp = fiberApp
}

func request(t *testing.T, req *http.Request, msTimeout ...int) *http.Response {
	t.Helper()

	resp, err := gFiberApp.Test(req, msTimeout...)
	if err != nil {
		t.Fatal(err)
	}

	return resp
}

func jsonRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return req
}

func bodyString(resp *http.Response) string {
	body := resp.Body
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return "[!] error: failed to read response body: " + err.Error()
	}

	return string(bodyBytes)
}
