package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"stdtick/pkg/config"
	"stdtick/pkg/convert"
	"stdtick/pkg/info"
	"stdtick/pkg/model"
	"stdtick/pkg/volume"
	"stdtick/pkg/xlog"
)

var logger = xlog.GetLogger()

var (
	fApp     string
	fLogDir  string
	fLogFile string

	fInput  string
	fOutput string
	fSkip   bool

	fSource   string
	fTarget   string
	fSSESnap  string
	fSZSESnap string
	fOutFile  string
	fDate     string

	fDebug    bool
	fWarnOnly bool
)

var (
	apps = map[string]bool{"hist": true, "raw": true, "check": true, "l2snap": true, "wind": true}
)

func init() {
	flag.StringVar(&fApp, "app", "", "")
	flag.StringVar(&fLogDir, "logdir", "", "")
	flag.StringVar(&fLogFile, "logfile", "", "")

	flag.StringVar(&fInput, "i", ".", "folder containing tick files")
	flag.StringVar(&fOutput, "o", "./std_tick", "folder to save std tick files")
	flag.BoolVar(&fSkip, "s", false, "skip already converted symbols")

	flag.StringVar(&fSource, "source", "./source.csv", "volume check source file")
	flag.StringVar(&fTarget, "target", "./target.csv", "volume check target file")
	flag.StringVar(&fSSESnap, "sse-snap", "./sse-l2-snap.csv", "sse l2 snap file")
	flag.StringVar(&fSZSESnap, "szse-snap", "./szse-l2-snap.csv", "szse l2 snap file")
	flag.StringVar(&fOutFile, "outfile", "", "output file")
	flag.StringVar(&fDate, "date", "", "warehouse trade date, e.g. 20240105")

	flag.BoolVar(&fDebug, "d", false, "enable debug log")
	flag.BoolVar(&fWarnOnly, "w", false, "only show warning log")
}

func main() {
	var err error
	flag.Parse()

	if !apps[fApp] {
		validApps := ""
		for k := range apps {
			validApps += k + ", "
		}
		panic("invalid app, only (" + validApps + ") available")
	}

	// Initialize the Shared config
	config.EasyInit()

	// Initialize the logger
	if fLogDir == "" {
		fLogDir = filepath.Join(config.Shared.DataDir, "logs")
	}
	if fLogFile == "" {
		fLogFile = fApp + ".log"
	}
	logPath := filepath.Join(fLogDir, fLogFile)
	xlog.Init(fApp, logPath)

	if fDebug {
		logger.SetLevelNum(xlog.DEBUG)
	}
	if fWarnOnly {
		logger.SetLevelNum(xlog.WARNING)
	}

	logger.Infof("%s started, instance %s", fApp, info.InstanceID)
	logger.Infof("xlog in %s", logPath)

	// Start the app
	switch fApp {
	case "hist":
		err = runHist()
	case "raw":
		err = runRaw()
	case "check":
		err = runCheck()
	case "l2snap":
		err = runL2Snap()
	case "wind":
		err = runWind()
	default:
		return
	}

	if err != nil {
		logger.Error(err)
		panic(err)
	}
}

// runHist converts the historical per-symbol folders under the input folder.
func runHist() (err error) {
	start := time.Now()

	sum, err := convert.ConvertHistorical(fInput, fOutput, fSkip)
	if err != nil {
		return
	}

	logSummary(sum, start)

	return
}

// runRaw converts one bulk raw-feed batch folder.
func runRaw() (err error) {
	start := time.Now()

	sum, err := convert.ConvertRaw(fInput, fOutput)
	if err != nil {
		return
	}

	logSummary(sum, start)

	return
}

func logSummary(sum convert.Summary, start time.Time) {
	if len(sum.NoData) > 0 {
		logger.Warningf("%d units are not converted because of no data: %v", len(sum.NoData), sum.NoData)
	}
	if len(sum.BadData) > 0 {
		logger.Warningf("%d units are not converted because of bad data: %v", len(sum.BadData), sum.BadData)
	}
	logger.Infof("converted %d units in %s", len(sum.Converted), time.Since(start))
}

// runCheck prints the symbols whose source volume exceeds the target volume.
func runCheck() (err error) {
	diffs, err := volume.Check(fSource, fTarget)
	if err != nil {
		return
	}

	fmt.Printf("%-8s %12s %12s %12s\n", "symbol", "source", "target", "difference")
	for _, d := range diffs {
		fmt.Printf("%-8s %12d %12d %12d\n", d.Symbol, d.Source, d.Target, d.Difference)
	}
	logger.Infof("%d symbols differ", len(diffs))

	return
}

// runL2Snap aggregates traded volume from both exchanges' L2 snapshots.
func runL2Snap() (err error) {
	out := fOutFile
	if out == "" {
		out = "./quantity_from_l2_snaps.csv"
	}

	err = volume.FromL2Snapshots(fSSESnap, fSZSESnap, out)

	return
}

// runWind dumps the warehouse's reported daily volume for one trade date.
func runWind() (err error) {
	if fDate == "" {
		err = errors.New("please specify date")
		return
	}

	out := fOutFile
	if out == "" {
		out = "./traded_volume.csv"
	}

	model.DBInit()
	reader := model.NewWindReader(model.GetMySQL())

	err = volume.FromWarehouse(reader, fDate, out)

	return
}
