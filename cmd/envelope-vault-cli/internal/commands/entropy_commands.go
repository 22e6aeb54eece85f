package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/entropy"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// EntropyCommandHandler runs the cursor-sampling seed demo in a terminal
// dashboard.
type EntropyCommandHandler struct {
	logger logger.Logger
}

// NewEntropyCommandHandler initializes a new EntropyCommandHandler.
func NewEntropyCommandHandler() (*EntropyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &EntropyCommandHandler{logger: loggerInstance}, nil
}

// MouseSeedCmd collects mouse movement in a tcell dashboard and derives a
// 64-bit seed from the trail
func (commandHandler *EntropyCommandHandler) MouseSeedCmd(cmd *cobra.Command, _ []string) {
	simulate, err := cmd.Flags().GetBool("simulate")
	if err != nil {
		commandHandler.logger.Error("invalid simulate flag: %v", err)
		return
	}
	minDistance, err := cmd.Flags().GetFloat64("min-distance")
	if err != nil {
		commandHandler.logger.Error("invalid min-distance flag: %v", err)
		return
	}
	samples, err := cmd.Flags().GetInt("samples")
	if err != nil {
		commandHandler.logger.Error("invalid samples flag: %v", err)
		return
	}

	collector := entropy.NewCollector(minDistance, samples)

	result, err := commandHandler.runDashboard(collector, simulate, samples)
	if err != nil {
		if errors.Is(err, entropy.ErrNotEnoughSamples) {
			commandHandler.logger.Error("aborted before enough movement was collected (need at least %d samples)", entropy.MinSamplesForSeed)
			return
		}
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Seed: ", result.Seed)
	commandHandler.logger.Info("Digest: ", result.Digest)
	commandHandler.logger.Info("Samples: ", result.DataPoints, " over ", fmt.Sprintf("%.0f", result.TotalDistance), " px")
	commandHandler.logger.Info("Entropy score: ", fmt.Sprintf("%.2f", result.EntropyScore))
}

// runDashboard drives the tcell event loop until the sample target is
// reached or the user presses Q or ESC.
func (commandHandler *EntropyCommandHandler) runDashboard(collector *entropy.Collector, simulate bool, target int) (*entropy.SeedResult, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	var ticker *time.Ticker
	var tick <-chan time.Time
	if simulate {
		ticker = time.NewTicker(20 * time.Millisecond)
		tick = ticker.C
		defer ticker.Stop()
	}

	defer close(quit)
	for {
		commandHandler.drawDashboard(screen, collector, simulate, target)

		select {
		case at := <-tick:
			x, y := entropy.SimulatePosition(at)
			collector.Add(x, y, at)
			if collector.Len() >= target {
				return collector.Seed()
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventMouse:
				x, y := ev.Position()
				collector.Add(x, y, time.Now())
				if collector.Len() >= target {
					return collector.Seed()
				}
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' || ev.Rune() == 'Q' {
					return collector.Seed()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

func (commandHandler *EntropyCommandHandler) drawDashboard(screen tcell.Screen, collector *entropy.Collector, simulate bool, target int) {
	screen.Clear()
	w, h := screen.Size()

	title := "MOUSE SEED COLLECTION"
	if simulate {
		title += " (simulated movement)"
	}
	drawText(screen, 0, 0, title, tcell.StyleDefault.Bold(true))
	drawText(screen, 0, 1, strings.Repeat("-", w), tcell.StyleDefault)

	progress := float64(collector.Len()) * 100.0 / float64(target)
	if progress > 100 {
		progress = 100
	}
	drawText(screen, 0, 3, fmt.Sprintf("Progress: %.1f%%  (%d/%d samples)", progress, collector.Len(), target), tcell.StyleDefault)
	drawText(screen, 0, 5, fmt.Sprintf("Stagnant points filtered: %d", collector.Stagnant()), tcell.StyleDefault)
	drawText(screen, 0, 6, fmt.Sprintf("Distance: %.0f px", collector.TotalDistance()), tcell.StyleDefault)
	drawText(screen, 0, 7, fmt.Sprintf("Entropy score: %.2f", collector.EntropyScore()), tcell.StyleDefault)

	if last, ok := collector.LastPoint(); ok {
		drawText(screen, 0, 8, fmt.Sprintf("Speed: %.0f px/s", last.Speed), tcell.StyleDefault)
		if last.X >= 0 && last.X < w && last.Y > 10 && last.Y < h-3 {
			screen.SetContent(last.X, last.Y, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		}
	}

	drawText(screen, 0, h-2, "Move the mouse chaotically. Press Q or ESC to finish.", tcell.StyleDefault)
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// InitEntropyCommands registers the seed demo command
func InitEntropyCommands(rootCmd *cobra.Command) error {
	handler, err := NewEntropyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create entropy command handler %w", err)
	}

	var mouseSeedCmd = &cobra.Command{
		Use:   "mouse-seed",
		Short: "Derive a demo seed from mouse movement",
		Run:   handler.MouseSeedCmd,
	}
	mouseSeedCmd.Flags().BoolP("simulate", "", false, "Generate movement instead of reading the mouse")
	mouseSeedCmd.Flags().Float64P("min-distance", "", 2.0, "Minimum movement in cells for a sample to count")
	mouseSeedCmd.Flags().IntP("samples", "", 256, "Number of samples to collect")
	rootCmd.AddCommand(mouseSeedCmd)
	return nil
}
