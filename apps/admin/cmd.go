package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/elimuhq/elimu/core/billing"
	"github.com/elimuhq/elimu/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type (
	// adminUserRepository adds the upsert only the CLI needs.
	adminUserRepository interface {
		user.Repository
		UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error)
	}

	feeRepository interface {
		CreateFee(ctx context.Context, fee billing.Fee) (billing.Fee, error)
	}

	commandLine struct {
		db      *sql.DB
		usrRepo adminUserRepository
		feeRepo feeRepository
	}
)

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -email EMAIL [-admin] - update or create a user. The password will be prompted next.")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command")
	fmt.Println("  seedfees -student ID -amount AMOUNT -due YYYY-MM-DD -semester SEMESTER -year YEAR [-description DESC] - create a fee")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant all admin roles.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	seedFeesCmd := flag.NewFlagSet("seedfees", flag.ExitOnError)
	seedFeesStudent := seedFeesCmd.String("student", "", "The student's user ID.")
	seedFeesAmount := seedFeesCmd.String("amount", "", "The fee amount.")
	seedFeesDue := seedFeesCmd.String("due", "", "The due date (YYYY-MM-DD).")
	seedFeesSemester := seedFeesCmd.String("semester", "", "The semester label. eg. \"Semester 1\"")
	seedFeesYear := seedFeesCmd.String("year", "", "The academic year. eg. \"2025/2026\"")
	seedFeesDescription := seedFeesCmd.String("description", "", "An optional description.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, *addUserEmail, string(pwd), *addUserAdmin)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, string(pwd))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedfees":
		if err := seedFeesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedFeesStudent == "" || *seedFeesAmount == "" || *seedFeesDue == "" || *seedFeesSemester == "" || *seedFeesYear == "" {
			seedFeesCmd.Usage()
			return errHelp
		}
		return cli.seedFee(*seedFeesStudent, *seedFeesAmount, *seedFeesDue, *seedFeesSemester, *seedFeesYear, *seedFeesDescription)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() ([]byte, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return pwd, err
}
