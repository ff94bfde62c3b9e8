package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/funvibe/funtc/internal/config"
	"github.com/funvibe/funtc/internal/numtype"
	"github.com/funvibe/funtc/internal/smt"
)

func printUsage() {
	fmt.Println("funtc - numeric constraint solver bridge")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  funtc selftest          Run the solver scenarios against the configured solver")
	fmt.Println("  funtc prelude           Print the axiom text the session would load")
	fmt.Println("  funtc help              Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -config <path>          Use the given funtc.yaml instead of searching")
	fmt.Println("  -v <level>              Trace verbosity: 0 silent, 1 engine, 2 wire traffic")
}

// parseArgs separates the command word from host flags.
func parseArgs() (cmd string, configPath string, verbosity int, verbositySet bool) {
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config", "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case "-v", "--verbosity":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid verbosity: %s\n", args[i+1])
					os.Exit(1)
				}
				verbosity = n
				verbositySet = true
				i++
			}
		default:
			if cmd == "" {
				cmd = args[i]
			}
		}
	}
	return
}

func loadConfiguration(configPath string) *config.Config {
	if configPath == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating config: %s\n", err)
			os.Exit(1)
		}
		if found == "" {
			return config.Default()
		}
		configPath = found
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

func handleHelp(cmd string) bool {
	if cmd != "help" && cmd != "-h" && cmd != "--help" {
		return false
	}
	printUsage()
	return true
}

func handlePrelude(cmd string, cfg *config.Config) bool {
	if cmd != "prelude" {
		return false
	}
	text, origin := smt.PreludeText(cfg.PreludeSearchDirs())
	fmt.Fprintf(os.Stderr, "; source: %s\n", origin)
	fmt.Print(text)
	return true
}

func handleSelftest(cmd string, cfg *config.Config) bool {
	if cmd != "selftest" {
		return false
	}

	s, err := smt.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting solver session: %s\n", err)
		os.Exit(1)
	}
	defer s.Close()

	failed := 0
	x := numtype.TVar{Name: "x", Free: true}

	check := func(name string, ok bool, err error) {
		switch {
		case err != nil:
			failed++
			fmt.Printf("FAIL %s: %s\n", name, err)
		case !ok:
			failed++
			fmt.Printf("FAIL %s\n", name)
		default:
			fmt.Printf("ok   %s\n", name)
		}
	}

	open, err := smt.ProveImplications(s,
		[]numtype.Prop{numtype.TFin{X: x}, numtype.TGeq{X: x, Y: numtype.Nat(3)}},
		[]numtype.Goal{{Prop: numtype.TGeq{X: x, Y: numtype.Nat(1)}}})
	check("implied goal discharged", len(open) == 0, err)

	open, err = smt.ProveImplications(s,
		[]numtype.Prop{numtype.TFin{X: x}},
		[]numtype.Goal{{Prop: numtype.TGeq{X: x, Y: numtype.Nat(1)}}})
	check("unimplied goal stays open", len(open) == 1, err)

	bad, err := smt.Unsolvable(s, []numtype.Goal{
		{Prop: numtype.TFin{X: x}},
		{Prop: numtype.TEq{X: x, Y: numtype.TInf{}}},
	})
	check("contradictory set detected", bad, err)

	su, err := smt.TryGetModel(s, []numtype.TVar{x},
		[]numtype.Prop{numtype.TFin{X: x}, numtype.TGeq{X: x, Y: numtype.Nat(5)}})
	modelOK := false
	if su != nil {
		if n, isNum := su[x].(numtype.TNum); isNum {
			modelOK = n.Value.Sign() >= 0 && n.Value.Int64() >= 5
		}
	}
	check("model extraction", modelOK, err)

	if failed > 0 {
		fmt.Printf("%d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	return true
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	cmd, configPath, verbosity, verbositySet := parseArgs()

	if cmd == "" || handleHelp(cmd) {
		if cmd == "" {
			printUsage()
		}
		return
	}

	cfg := loadConfiguration(configPath)
	if verbositySet {
		cfg.Verbosity = verbosity
	}

	if handlePrelude(cmd, cfg) {
		return
	}
	if handleSelftest(cmd, cfg) {
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
	printUsage()
	os.Exit(1)
}
