package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ownable/capability"
	"ownable/config"
	"ownable/contract"
	"ownable/crypto"
	"ownable/observability"
	"ownable/observability/logging"
	"ownable/storage"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultConfig = "./ownablectl.toml"
	boltFileName  = "dumps.db"
)

var errUsage = errors.New("invalid usage")

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	api    capability.API
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and returns the process exit code. A bare
// errUsage means usage was already printed.
func execute(args []string, out, errOut io.Writer) int {
	if err := run(args, out, errOut); err != nil {
		if err != errUsage {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func run(args []string, out, errOut io.Writer) error {
	global := flag.NewFlagSet("ownablectl", flag.ContinueOnError)
	global.SetOutput(errOut)
	configPath := global.String("config", defaultConfig, "Path to the ownablectl config file (.toml or .yaml)")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage(errOut)
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := logging.SetupWithOptions(logging.Options{
		Service: "ownablectl",
		Env:     cfg.Log.Env,
		File:    cfg.Log.File,
		Output:  errOut,
		Level:   level,
	})

	a := &app{cfg: cfg, logger: logger, out: out, api: capability.NewEmptyAPI(logger)}
	cmdErr := a.dispatch(rest[0], rest[1:], errOut)
	if err := a.writeMetrics(); err != nil {
		logger.Warn("write metrics", slog.String("error", err.Error()))
	}
	return cmdErr
}

func (a *app) dispatch(command string, args []string, errOut io.Writer) error {
	switch command {
	case "eip155":
		return a.runEIP155(args)
	case "lto":
		return a.runLTO(args, errOut)
	case "lto-verify":
		return a.runLTOVerify(args)
	case "canonicalize":
		return a.runCanonicalize(args)
	case "humanize":
		return a.runHumanize(args)
	case "color":
		return a.runColor(args)
	case "snapshot":
		return a.runSnapshot(args, errOut)
	default:
		usage(errOut)
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `Usage: ownablectl [-config path] <command> [args]

Commands:
  eip155 <pubkey-base58>                 derive a checksummed EIP-155 address
  lto [-network L|T] <pubkey-base58>     derive an LTO address
  lto-verify <address>                   validate an LTO address
  canonicalize <human>                   canonicalize an address with the sandbox API
  humanize <hex>                         humanize a canonical address
  color <hash>                           derive a #RRGGBB color from a hex hash
  snapshot canonicalize -in FILE [-out FILE]
  snapshot fingerprint -in FILE
  snapshot put -id ID -in FILE
  snapshot get -id ID
  snapshot rm -id ID
  snapshot ls`)
}

func singleArg(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects exactly one argument: %w", command, errUsage)
	}
	return args[0], nil
}

func (a *app) runEIP155(args []string) error {
	key, err := singleArg("eip155", args)
	if err != nil {
		return err
	}
	addr, err := crypto.DeriveEIP155Address(key)
	observability.Derivations().ObserveDerivation("eip155", err)
	if err != nil {
		return err
	}
	a.logger.Debug("derived address", slog.String("scheme", "eip155"), slog.String("address", addr))
	fmt.Fprintln(a.out, addr)
	return nil
}

func (a *app) runLTO(args []string, errOut io.Writer) error {
	fs := flag.NewFlagSet("lto", flag.ContinueOnError)
	fs.SetOutput(errOut)
	network := fs.String("network", a.cfg.NetworkID, "LTO network id (L for mainnet, T for testnet)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	key, err := singleArg("lto", fs.Args())
	if err != nil {
		return err
	}
	id, err := crypto.ParseNetworkID(*network)
	if err != nil {
		observability.Derivations().ObserveDerivation("lto", err)
		return err
	}
	addr, err := crypto.DeriveLTOAddress(id, key)
	observability.Derivations().ObserveDerivation("lto", err)
	if err != nil {
		return err
	}
	a.logger.Debug("derived address", slog.String("scheme", "lto"), slog.String("network", id.String()), slog.String("address", addr))
	fmt.Fprintln(a.out, addr)
	return nil
}

func (a *app) runLTOVerify(args []string) error {
	addr, err := singleArg("lto-verify", args)
	if err != nil {
		return err
	}
	network, err := crypto.ValidateLTOAddress(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "valid (network %s)\n", network)
	return nil
}

func (a *app) runCanonicalize(args []string) error {
	human, err := singleArg("canonicalize", args)
	if err != nil {
		return err
	}
	canonical, err := a.api.AddrCanonicalize(human)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, crypto.HexEncode(canonical))
	return nil
}

func (a *app) runHumanize(args []string) error {
	encoded, err := singleArg("humanize", args)
	if err != nil {
		return err
	}
	canonical, err := crypto.HexDecode(encoded)
	if err != nil {
		return err
	}
	human, err := a.api.AddrHumanize(canonical)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, human)
	return nil
}

func (a *app) runColor(args []string) error {
	hash, err := singleArg("color", args)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, contract.RandomColor(hash))
	return nil
}

func (a *app) runSnapshot(args []string, errOut io.Writer) error {
	if len(args) == 0 {
		usage(errOut)
		return errUsage
	}
	fs := flag.NewFlagSet("snapshot "+args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	in := fs.String("in", "", "Path to a JSON state dump")
	outPath := fs.String("out", "", "Write the result to this file instead of stdout")
	id := fs.String("id", "", "Ownable id in the snapshot archive")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "canonicalize":
		dump, err := readDump(*in)
		if err != nil {
			return err
		}
		exported := storage.Export(storage.Load(dump))
		observability.Derivations().ObserveSnapshot(len(exported.Entries))
		return a.writeDump(exported, *outPath)
	case "fingerprint":
		dump, err := readDump(*in)
		if err != nil {
			return err
		}
		sum := dump.Fingerprint()
		fmt.Fprintln(a.out, crypto.HexEncode(sum[:]))
		return nil
	case "put":
		dump, err := readDump(*in)
		if err != nil {
			return err
		}
		return a.withArchive("put", func(archive storage.Archive) error {
			exported := storage.Export(storage.Load(dump))
			observability.Derivations().ObserveSnapshot(len(exported.Entries))
			if err := archive.Put(*id, exported); err != nil {
				return err
			}
			a.logger.Info("stored snapshot", slog.String("id", *id), slog.Int("entries", len(exported.Entries)))
			return nil
		})
	case "get":
		return a.withArchive("get", func(archive storage.Archive) error {
			dump, err := archive.Get(*id)
			if err != nil {
				return err
			}
			return a.writeDump(dump, *outPath)
		})
	case "rm":
		return a.withArchive("rm", func(archive storage.Archive) error {
			return archive.Delete(*id)
		})
	case "ls":
		return a.withArchive("ls", func(archive storage.Archive) error {
			ids, err := archive.IDs()
			if err != nil {
				return err
			}
			for _, name := range ids {
				fmt.Fprintln(a.out, name)
			}
			return nil
		})
	default:
		usage(errOut)
		return errUsage
	}
}

func readDump(path string) (storage.Dump, error) {
	if strings.TrimSpace(path) == "" {
		return storage.Dump{}, fmt.Errorf("-in is required: %w", errUsage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return storage.Dump{}, err
	}
	var dump storage.Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return storage.Dump{}, fmt.Errorf("read %s: %w", path, err)
	}
	return dump, nil
}

func (a *app) writeDump(dump storage.Dump, path string) error {
	data, err := json.Marshal(dump)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (a *app) withArchive(op string, fn func(storage.Archive) error) (err error) {
	defer func() { observability.Archive().RecordOperation(a.cfg.ArchiveBackend, op, err) }()
	path := a.cfg.ArchiveDir
	if strings.EqualFold(a.cfg.ArchiveBackend, storage.BackendBolt) {
		path = filepath.Join(path, boltFileName)
	}
	archive, err := storage.OpenArchive(a.cfg.ArchiveBackend, path)
	if err != nil {
		return err
	}
	defer archive.Close()
	return fn(archive)
}

func (a *app) writeMetrics() error {
	if strings.TrimSpace(a.cfg.MetricsFile) == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.cfg.MetricsFile, prometheus.DefaultGatherer)
}
