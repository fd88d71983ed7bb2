package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	console "github.com/asynkron/goconsole"
	"github.com/asynkron/protoactor-go/actor"
	"io"
	"log"
	"minotaur-simulation/impl/eventlogger"
	"minotaur-simulation/impl/parameters"
	"minotaur-simulation/impl/protocols/party"
	"minotaur-simulation/impl/protocols/showroom"
	"minotaur-simulation/impl/utils"
	"os"
	"os/signal"
)

const (
	PartyProtocol = "party"
	VaseProtocol  = "vase"
)

var (
	inputFile = flag.String("input_file", "", "Path to the input file in json format")
	logFile   = flag.String("log_file", "",
		"Path to the file where to save logs produced by the simulation")
	protocol = flag.String("protocol", "",
		"A protocol to run, either party or vase; overrides the protocol from the input file")
	interactive = flag.Bool("interactive", false,
		"Wait for a line on stdin before exiting")
)

type Input struct {
	Protocol   string                `json:"protocol"`
	Parameters parameters.Parameters `json:"parameters"`
}

func readInput(logger *log.Logger) *Input {
	input := &Input{
		Protocol:   PartyProtocol,
		Parameters: *parameters.Default(),
	}
	if *inputFile == "" {
		return input
	}

	iFile, e := os.Open(*inputFile)
	if e != nil {
		utils.ExitWithError(logger, fmt.Sprintf("Can't read from file %s", *inputFile))
	}
	defer iFile.Close()

	byteArray, e := io.ReadAll(iFile)
	if e != nil {
		utils.ExitWithError(logger, fmt.Sprintf("Could not read bytes from the input file\n%v", e))
	}

	e = json.Unmarshal(byteArray, input)
	if e != nil {
		utils.ExitWithError(logger, fmt.Sprintf("Could not parse json from the input file\n%v", e))
	}
	return input
}

// openOutput never hands out a closer for stdout, which OpenLogFile falls
// back to when the log file cannot be created.
func openOutput(logFile string) (*os.File, func()) {
	if logFile == "" {
		return os.Stdout, func() {}
	}
	out := utils.OpenLogFile(logFile)
	if out == os.Stdout {
		return out, func() {}
	}
	return out, func() {
		_ = out.Close()
	}
}

func main() {
	flag.Parse()

	out, closeOut := openOutput(*logFile)
	defer closeOut()
	logger := log.New(out, "", log.LstdFlags)

	input := readInput(logger)
	if *protocol != "" {
		input.Protocol = *protocol
	}
	params := &input.Parameters
	if e := params.Validate(); e != nil {
		utils.ExitWithError(logger, e.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch input.Protocol {
	case PartyProtocol:
		runParty(ctx, params, logger)
	case VaseProtocol:
		runVase(ctx, params, logger)
	default:
		utils.ExitWithError(logger, fmt.Sprintf("Unknown protocol %s", input.Protocol))
	}

	if *interactive {
		_, _ = console.ReadLine()
	}
}

func runParty(ctx context.Context, params *parameters.Parameters, logger *log.Logger) {
	system := actor.NewActorSystem()
	eventLogger := eventlogger.InitEventLogger("party", logger)

	report, e := party.NewParty(system, params, eventLogger).Run(ctx)
	if e != nil {
		logger.Printf("Party ended without confirmation: %v\n", e)
		return
	}
	logger.Printf(
		"The leader has confirmed that all %d guests have visited the labyrinth at least once "+
			"(visits: %d, rounds: %d)\n",
		len(report.Visited), report.Visits, report.Rounds)
}

func runVase(ctx context.Context, params *parameters.Parameters, logger *log.Logger) {
	eventLogger := eventlogger.InitEventLogger("showroom", logger)

	report, e := showroom.NewExhibition(params.GuestCount, eventLogger).Run(ctx)
	if e != nil {
		logger.Printf("Showroom closed before every guest viewed the vase: %v\n", e)
		return
	}
	logger.Printf("All %d guests have viewed the vase\n", report.Served)
}
