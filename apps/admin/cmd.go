package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/certificate"
	"github.com/trezcool/eduverse/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	usrSvc   *user.Service
	catSvc   *catalog.Service
	certGen  *certificate.Generator
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  courses [-search TEXT] [-category NAME] - list the catalog")
	fmt.Fprintln(cli.out, "  users [-search TEXT] [-role "+strings.Join(user.AllRoles, "|")+"] - list the accounts")
	fmt.Fprintln(cli.out, "  stats - platform overview and top courses")
	fmt.Fprintln(cli.out, "  certificate -number NUMBER [-out FILE] - write the verification QR code of a certificate")
	fmt.Fprintln(cli.out, "  scene [-variant models|primitives] [-json] - validate a classroom scene and summarize its graph")
	fmt.Fprintln(cli.out, "  checkpassword -email EMAIL - check a user's password, prompted next")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	coursesCmd := cli.flagSet("courses")
	coursesSearch := coursesCmd.String("search", "", "Only courses whose title or description contain TEXT.")
	coursesCategory := coursesCmd.String("category", "", "Only courses of the category.")

	usersCmd := cli.flagSet("users")
	usersSearch := usersCmd.String("search", "", "Only users whose name or email contain TEXT.")
	usersRole := usersCmd.String("role", "", "Only users of the role: "+strings.Join(user.AllRoles, ", ")+".")

	certCmd := cli.flagSet("certificate")
	certNumber := certCmd.String("number", "", "The certificate number, e.g. WD-2024-001234.")
	certOut := certCmd.String("out", "", "The PNG file to write. Defaults to NUMBER.png.")

	sceneCmd := cli.flagSet("scene")
	sceneVariant := sceneCmd.String("variant", "models", "The scene variant: models or primitives.")
	sceneJSON := sceneCmd.Bool("json", false, "Print the scene graph as JSON.")

	checkPwdCmd := cli.flagSet("checkpassword")
	checkPwdEmail := checkPwdCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listCourses(catalog.QueryFilter{Search: *coursesSearch, Category: *coursesCategory})
	case "users":
		if err := usersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listUsers(user.QueryFilter{Search: *usersSearch, Role: *usersRole})
	case "stats":
		return cli.stats()
	case "certificate":
		if err := certCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *certNumber == "" {
			certCmd.Usage()
			return errHelp
		}
		return cli.writeCertificateQR(*certNumber, *certOut)
	case "scene":
		if err := sceneCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.describeScene(*sceneVariant, *sceneJSON)
	case "checkpassword":
		if err := checkPwdCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkPwdEmail == "" {
			checkPwdCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			checkPwdCmd.Usage()
			return errHelp
		}
		return cli.checkPassword(*checkPwdEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
