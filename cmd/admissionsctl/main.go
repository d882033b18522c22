// Command admissionsctl is the operator tool for the admissions backend.
//
// Usage:
//
//	admissionsctl [-config path] migrate
//	admissionsctl [-config path] seed
//	admissionsctl [-config path] inbox [-status submitted] [-program 1] [-search text] [-page 1] [-limit 20]
//	admissionsctl [-config path] review -id 12 -decision accept -dean dean@admissions.local
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admissionsctl [-config path] <migrate|seed|inbox|review> [flags]")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	env, err := newEnvironment(ctx, *configPath)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	defer env.Close()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "migrate":
		err = runMigrate(ctx, env)
	case "seed":
		err = runSeed(ctx, env)
	case "inbox":
		err = runInbox(ctx, env, args)
	case "review":
		err = runReview(ctx, env, args)
	default:
		color.Red("Unknown command %q", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
