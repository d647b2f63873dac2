package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/ops"
	"github.com/mcjdh/eternal-click-slayer/internal/save"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	case "inspect":
		if err := cmdInspect(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "inspect failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to save data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "clickslayer-"+ts+".tar.gz")
	}

	man, err := ops.Backup(*dataDir, *out)
	if err != nil {
		return err
	}
	fmt.Println(*out)
	fmt.Println("archive id:", man.ID)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	man, err := ops.Restore(*archive, *target)
	if err != nil {
		return err
	}
	fmt.Println("archive id:", man.ID)
	fmt.Println("restored:", *target)
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to save data directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "clickslayer-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "clickslayer-drill-restore-"+ts)

	if _, err := ops.Backup(*dataDir, archive); err != nil {
		return err
	}
	if _, err := ops.Restore(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := ops.Digest(*dataDir)
	if err != nil {
		return err
	}
	restoreDigest, err := ops.Digest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

// cmdInspect decodes a save without starting the game, for poking at player
// reports about broken progression.
func cmdInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to save data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := save.NewFileRepo(*dataDir, false)
	if err != nil {
		return err
	}
	snap, err := repo.Load()
	if err != nil {
		return err
	}
	st, achieved := snap.Apply(config.Default())

	fmt.Println("save id:", snap.ID)
	fmt.Println("version:", snap.Version)
	fmt.Println("saved at:", snap.SavedAt.Format(time.RFC3339))
	fmt.Println("gold:", st.Gold)
	fmt.Println("enemy level:", st.Enemy.Level)
	fmt.Println("click damage:", st.ClickDamage)
	fmt.Println("dps:", st.DPS)
	fmt.Printf("stars: %.1f (prestiges: %d)\n", st.Stars, st.TotalPrestiges)
	fmt.Println("achievements:", len(achieved))
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  clickslayer-ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  clickslayer-ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  clickslayer-ops drill   --data-dir data --work-dir /tmp")
	fmt.Println("  clickslayer-ops inspect --data-dir data")
}
