package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/lucy-seohyun/D2STGNN/cmd/gen-training-data/app"
)

// gen-training-data main.
func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	root := app.NewGenerateCommand()
	root.AddCommand(app.NewCmdDescribe())
	root.AddCommand(app.NewCmdInspect())
	root.AddCommand(app.NewCmdVersion())

	if err := root.Execute(); err != nil {
		klog.Flush()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
