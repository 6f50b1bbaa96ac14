package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"seqinfer/pkg/common"
	"seqinfer/pkg/config"
	"seqinfer/pkg/observer"
	"seqinfer/pkg/sequence"
	"seqinfer/pkg/store"
)

func main() {
	configPath := flag.String("config", "", "config file path")
	order := flag.Int("order", -1, "transition order (overrides config)")
	nitem := flag.Int("nitem", 0, "alphabet size (0 = infer from sequence)")
	weight := flag.Float64("weight", 0, "prior weight (overrides config)")
	decay := flag.Float64("decay", 0, "leaky decay time constant")
	window := flag.Int("window", 0, "sliding window size")
	save := flag.Bool("save", false, "persist the run to the store")
	pattern := flag.String("pattern", "", "pattern filter for 'show', e.g. 0,1")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		return
	}

	switch args[0] {
	case "run":
		handleRun(cfg, args[1:], *order, *nitem, *weight, *decay, *window, *save)
	case "show":
		handleShow(cfg, args[1:], *pattern)
	case "list":
		handleList(cfg)
	case "help":
		printHelp()
	default:
		fmt.Printf("Unknown command: '%s'. Try 'help'.\n", args[0])
		os.Exit(1)
	}
}

func handleRun(cfg *config.Config, args []string, order, nitem int, weight, decay float64, window int, save bool) {
	if len(args) < 1 {
		fmt.Println("Usage: seqinfer run <sequence>  (e.g. seqinfer run 0,1,0,1,0,1)")
		os.Exit(1)
	}
	seq, err := sequence.Parse(args[0])
	if err != nil {
		fmt.Printf("Bad sequence: %v\n", err)
		os.Exit(1)
	}

	opt := optionsFrom(cfg, order, nitem, weight, decay, window)
	res, err := observer.Infer(seq, opt)
	if err != nil {
		fmt.Printf("Inference failed: %v\n", err)
		os.Exit(1)
	}

	printResult(seq, res)

	if save {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			fmt.Printf("Store error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		run := &common.Run{
			Order:       res.Count.Space.Order,
			Nitem:       res.Count.Space.Nitem,
			Policy:      observer.CountOptions{Decay: opt.Decay, Window: opt.Window}.Policy(),
			Decay:       opt.Decay,
			Window:      opt.Window,
			PriorWeight: opt.PriorWeight,
			Seq:         seq,
		}
		id, err := st.SaveRun(run, res.Posterior)
		if err != nil {
			fmt.Printf("Save failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved as run %d (%s)\n", id, cfg.Store.Path)
	}
}

func optionsFrom(cfg *config.Config, order, nitem int, weight, decay float64, window int) observer.Options {
	opt := observer.Options{
		Order:       cfg.Inference.Order,
		Nitem:       cfg.Inference.Nitem,
		PriorWeight: cfg.Inference.PriorWeight,
	}
	switch cfg.Inference.Policy {
	case "decay":
		opt.Decay = cfg.Inference.Decay
	case "window":
		opt.Window = cfg.Inference.Window
	}
	if order >= 0 {
		opt.Order = order
	}
	if nitem > 0 {
		opt.Nitem = nitem
	}
	if weight > 0 {
		opt.PriorWeight = weight
	}
	if decay > 0 {
		opt.Decay = decay
		opt.Window = 0
	}
	if window > 0 {
		opt.Window = window
		opt.Decay = 0
	}
	return opt
}

func printResult(seq common.Sequence, res *observer.Result) {
	space := res.Count.Space
	last := len(seq) - 1
	fmt.Printf("Sequence: %s (N=%d, alphabet=%d, order=%d)\n", seq, len(seq), space.Nitem, space.Order)
	fmt.Println("Final posterior per transition pattern:")
	fmt.Printf("%-12s %8s %8s %8s %8s\n", "pattern", "count", "mean", "MAP", "SD")
	for i := 0; i < space.Size(); i++ {
		p := space.Pattern(i)
		fmt.Printf("%-12s %8.3f %8.4f %8.4f %8.4f\n", p,
			res.Count.Series[i][last], res.Posterior.Mean[i][last],
			res.Posterior.MAP[i][last], res.Posterior.SD[i][last])
	}

	fmt.Println("Surprise (bits) per position:")
	for t, s := range res.Surprise {
		if math.IsNaN(s) {
			fmt.Printf("  t=%-3d -\n", t)
		} else {
			fmt.Printf("  t=%-3d %.4f\n", t, s)
		}
	}
}

func handleShow(cfg *config.Config, args []string, pattern string) {
	if len(args) < 1 {
		fmt.Println("Usage: seqinfer show <run_id>")
		os.Exit(1)
	}
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		fmt.Printf("Bad run id %q\n", args[0])
		os.Exit(1)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Printf("Store error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	run, err := st.LoadRun(id)
	if err != nil {
		fmt.Printf("Load failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s created=%s seq=%s\n", run, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Seq)

	rows, err := st.Estimates(id, pattern)
	if err != nil {
		fmt.Printf("Estimates failed: %v\n", err)
		os.Exit(1)
	}
	final := len(run.Seq) - 1
	fmt.Printf("%-12s %5s %8s %8s %8s\n", "pattern", "pos", "mean", "MAP", "SD")
	for _, r := range rows {
		// without a pattern filter, only show the final position
		if pattern == "" && r.Pos != final {
			continue
		}
		fmt.Printf("%-12s %5d %8.4f %8.4f %8.4f\n", r.Pattern, r.Pos, r.Mean, r.MAP, r.SD)
	}
}

func handleList(cfg *config.Config) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Printf("Store error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	n := 0
	err = st.ListRuns(func(run *common.Run) bool {
		fmt.Printf("%s created=%s\n", run, run.CreatedAt.Format("2006-01-02 15:04:05"))
		n++
		return true
	})
	if err != nil {
		fmt.Printf("List failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d run(s)\n", n)
}

func printHelp() {
	fmt.Println("seqinfer - Bayesian ideal observer for discrete symbol sequences")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run <sequence>   infer transition probabilities (e.g. run 0,1,0,1,0,1)")
	fmt.Println("  show <run_id>    print stored estimates of a run")
	fmt.Println("  list             list stored runs")
	fmt.Println("  help             this message")
	fmt.Println()
	fmt.Println("Flags: -config -order -nitem -weight -decay -window -save -pattern")
}
