// reorg renames screenshots in an export directory to the canonical "<device> <number>.<ext>" form
package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"k8s.io/klog/v2"

	"github.com/tstromberg/screenreport/pkg/screenreport"
)

var dryRun = flag.Bool("n", false, "dry-run mode, don't move things")

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() != 1 {
		klog.Exitf("usage: reorg [-n] <export dir>")
	}
	root := flag.Arg(0)

	rs, err := screenreport.Plan(root)
	if err != nil {
		klog.Exitf("unable to plan: %v", err)
	}

	if len(rs) == 0 {
		fmt.Println(color.GreenString("all screenshot names are canonical"))
		return
	}

	for _, r := range rs {
		rel, err := filepath.Rel(root, r.From)
		if err != nil {
			rel = r.From
		}
		fmt.Printf("%s -> %s\n", color.YellowString(rel), color.GreenString(filepath.Base(r.To)))
	}

	if *dryRun {
		return
	}

	if err := screenreport.Apply(rs); err != nil {
		klog.Exitf("unable to rename: %v", err)
	}
}
