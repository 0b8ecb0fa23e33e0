package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esimov/grayzip"
	"github.com/esimov/grayzip/utils"
)

const HelpBanner = `
┌─┐┬─┐┌─┐┬ ┬┌─┐┬┌─┐
│ ┬├┬┘├─┤└┬┘┌─┘│├─┘
└─┘┴└─┴ ┴ ┴ └─┘┴┴

Extract a zip archive and grayscale the PNG images it contains.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "myfile.zip", "Source archive path or URL")
	unzipDir    = flag.String("unzip", "unzipped", "Directory the archive is extracted into")
	destination = flag.String("out", "grayscaled", "Directory the grayscale images are saved into")
	debug       = flag.Bool("debug", false, "Enable verbose logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := utils.NewLogger(*debug)
	if err != nil {
		log.Fatalf(utils.DecorateText("Unable to initialize the logger: %v", utils.ErrorMessage), err)
	}
	defer logger.Sync()

	proc := &grayzip.Processor{
		Logger: logger,
	}

	if utils.IsTerminal(os.Stderr) && !*debug {
		spinnerText := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ GRAYZIP", utils.StatusMessage),
			utils.DecorateText("⇢ extracting the archive...", utils.DefaultMessage),
		)
		proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*80, true)

		// Capture CTRL-C signal and restore the cursor visibility back.
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-signalChan
			proc.Spinner.RestoreCursor()
			os.Exit(1)
		}()
	}

	report, err := proc.Execute(&grayzip.Ops{
		Src:      *source,
		UnzipDir: *unzipDir,
		OutDir:   *destination,
	})
	if err != nil {
		logger.Sync()
		log.Fatalf(
			utils.DecorateText("\nError processing the archive: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
	printStatus(report, *destination)
}

// printStatus displays the relevant information about the processed images.
func printStatus(report *grayzip.Report, dest string) {
	failed := report.Failed()
	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "\n%s\n",
			utils.DecorateText(fmt.Sprintf("%d image(s) could not be converted:", len(failed)), utils.ErrorMessage),
		)
		for _, res := range failed {
			fmt.Fprintf(os.Stderr, "\t%s: %v\n", res.Src, res.Err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n%s %s\n",
		utils.DecorateText(fmt.Sprintf("%d of %d image(s) saved into:", report.Converted(), len(report.Images)), utils.DefaultMessage),
		utils.DecorateText(dest, utils.SuccessMessage),
	)
	fmt.Fprintf(os.Stderr, "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(report.Elapsed), utils.SuccessMessage),
	)
}
