package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/elimuhq/elimu/core/user"
	inmemdb "github.com/elimuhq/elimu/storage/database/inmem"
	testutil "github.com/elimuhq/elimu/tests"
)

var (
	usrRepo adminUserRepository
	feeRepo feeRepository
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	feeRepo = inmemdb.NewBillingRepository(db)

	// start CLI
	return &commandLine{
		usrRepo: usrRepo,
		feeRepo: feeRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "grade", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.ug", "mdr", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cr3t"), nil }

	if err := cli.run([]string{"admin", "adduser", "-username", "boss", "-email", "boss@test.ug", "-admin"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{Username: "boss"})
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if !usr.IsAdmin() {
		t.Error("user is not admin")
	}
	if !usr.Active() {
		t.Error("user is not active")
	}
	if err := usr.CheckPassword("s3cr3t"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}

	// running again updates the same user
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("n3wpwd"), nil }
	if err := cli.run([]string{"admin", "adduser", "-username", "boss", "-email", "boss@test.ug"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	refreshed, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if err := refreshed.CheckPassword("n3wpwd"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
}

func Test_commandLine_seedFee(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "", user.StudentRoles, true)

	tests := []cliTest{
		{name: "missing flags", args: []string{"seedfees", "-student", usr.ID}, wantErr: errHelp},
		{name: "bad amount", args: []string{"seedfees", "-student", usr.ID, "-amount", "lol", "-due", "2026-02-01", "-semester", "Semester 1", "-year", "2025/2026"}, wantErrStr: "can't convert lol to decimal"},
		{name: "bad date", args: []string{"seedfees", "-student", usr.ID, "-amount", "1000", "-due", "lol", "-semester", "Semester 1", "-year", "2025/2026"}, wantErrStr: `parsing time "lol" as "2006-01-02": cannot parse "lol" as "2006"`},
		{name: "negative amount", args: []string{"seedfees", "-student", usr.ID, "-amount", "-50", "-due", "2026-02-01", "-semester", "Semester 1", "-year", "2025/2026"}, wantErrStr: "amount must not be negative"},
		{name: "create", args: []string{"seedfees", "-student", usr.ID, "-amount", "1000", "-due", "2026-02-01", "-semester", "Semester 1", "-year", "2025/2026", "-description", "Tuition"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
				return
			}
			if err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}
