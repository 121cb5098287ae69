package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/certificate"
	"github.com/trezcool/eduverse/core/classroom"
	"github.com/trezcool/eduverse/core/user"
	"github.com/trezcool/eduverse/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	db := testutil.OpenDB(t)
	validate, _ := core.NewValidator()
	out := new(bytes.Buffer)

	return &commandLine{
		out:      out,
		usrSvc:   testutil.NewUserService(t, db),
		catSvc:   testutil.NewCatalogService(t, db),
		certGen:  certificate.NewGenerator(testutil.NewConfig()),
		validate: validate,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	extra      interface{}
}

func runCLITests(t *testing.T, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if pwd, ok := tt.extra.(string); ok {
				return []byte(pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			for _, s := range tt.wantOut {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output does not contain %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{"checkpassword -email EMAIL", "-role student|instructor|admin"}},
	})
}

func Test_commandLine_courses(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "all", args: []string{"courses"}, wantOut: []string{"ID", "Complete Web Development Bootcamp 2024", "6 courses"}},
		{name: "all category", args: []string{"courses", "-category", catalog.AllCategories}, wantOut: []string{"6 courses"}},
		{name: "search", args: []string{"courses", "-search", "  bootcamp "}, wantOut: []string{"Bootcamp", "1 courses"}},
		{name: "no match", args: []string{"courses", "-search", "zzzz"}, wantOut: []string{"0 courses"}},
		{name: "bad flag", args: []string{"courses", "-lol"}, wantErrStr: "flag provided but not defined"},
	})
}

func Test_commandLine_users(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "all", args: []string{"users"}, wantOut: []string{"EMAIL", "admin@elearning.com", "3 users"}},
		{name: "by role", args: []string{"users", "-role", user.RoleInstructor}, wantOut: []string{"sarah.johnson@example.com", "Instructor", "1 users"}},
		{name: "search and role", args: []string{"users", "-search", "example", "-role", user.RoleStudent}, wantOut: []string{"john.doe@example.com", "1 users"}},
		{name: "unknown role", args: []string{"users", "-role", "janitor"}, wantErrStr: "oneof"},
	})
}

func Test_commandLine_stats(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "overview", args: []string{"stats"}, wantOut: []string{"Active courses:      6", "Certificates issued: 1", "Instructors:         1", "1. "}},
	})
}

func Test_commandLine_certificate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")

	runCLITests(t, []cliTest{
		{name: "no number", args: []string{"certificate"}, wantErr: errHelp},
		{name: "unknown number", args: []string{"certificate", "-number", "lol"}, wantErr: catalog.ErrCertificateNotFound},
		{
			name: "write", args: []string{"certificate", "-number", "WD-2024-001234", "-out", out},
			wantOut: []string{out, "WD-2024-001234"},
		},
	})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("os.ReadFile() failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("certificate QR code is not a PNG")
	}
}

func Test_commandLine_scene(t *testing.T) {
	runCLITests(t, []cliTest{
		{
			name: "models", args: []string{"scene"},
			wantOut: []string{"scene models: 15 seats", "asset  /classroom/scene.gltf"},
		},
		{name: "primitives", args: []string{"scene", "-variant", "primitives"}, wantOut: []string{"scene primitives: 15 seats", "mesh"}},
		{name: "unknown", args: []string{"scene", "-variant", "lol"}, wantErr: errUnknownVariant},
	})

	cli, out := setup(t)
	if err := cli.run([]string{"admin", "scene", "-variant", "primitives", "-json"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	var g classroom.Graph
	if err := json.Unmarshal(out.Bytes(), &g); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if _, ok := g.Find("actors/teacher"); !ok {
		t.Error("graph has no teacher")
	}
}

func Test_commandLine_checkPassword(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no args", args: []string{"checkpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"checkpassword", "-email", "john.doe@example.com"}, wantErr: errHelp},
		{name: "user not found", args: []string{"checkpassword", "-email", "lol@example.com"}, extra: "lol", wantErr: user.ErrNotFound},
		{name: "wrong password", args: []string{"checkpassword", "-email", "john.doe@example.com"}, extra: "lol", wantErr: errWrongPassword},
		{
			name: "ok", args: []string{"checkpassword", "-email", "john.doe@example.com"}, extra: user.DemoPassword,
			wantOut: []string{"password OK for John Doe (Student)"},
		},
	})
}
