package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrdg/ahdsr/audio"
	"golang.org/x/term"
)

const defaultBarWidth = 20

type printer struct {
	w     io.Writer
	color bool
	width int // width of the stage progress bar
}

func newPrinter(w io.Writer, color bool) *printer {
	p := &printer{w: w, color: color, width: defaultBarWidth}
	if !color {
		return p
	}
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols/4 > defaultBarWidth {
		p.width = cols / 4
	}
	return p
}

func (p *printer) notice(n audio.Notice) {
	fmt.Fprintln(p.w, p.format(n))
}

func (p *printer) format(n audio.Notice) string {
	switch n.Kind {
	case audio.NoticeGateChanged:
		gate, color := "off", colorRed
		if n.Gate {
			gate, color = "on", colorGreen
		}
		return fmt.Sprintf("gate %s at quantum %d offset %d", p.colorize(gate, color), n.Quantum, n.Offset)
	case audio.NoticeState:
		return p.formatState(n.State)
	}
	return n.Kind.String()
}

var stageColors = map[audio.Stage]int{
	audio.StageRest:    colorBlack,
	audio.StageAttack:  colorRed,
	audio.StageHold:    colorYellow,
	audio.StageDecay:   colorMagenta,
	audio.StageSustain: colorGreen,
	audio.StageRelease: colorBlue,
}

func (p *printer) formatState(s audio.Snapshot) string {
	filled := int(s.StageProgress * float64(p.width))
	if filled > p.width {
		filled = p.width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", p.width-filled)
	stage := fmt.Sprintf("%-7s", s.Stage)
	params := s.Parameters
	return fmt.Sprintf("%s [%s] %.3f out %.4f\n  attack %.3f in %.3fs, hold %.3fs, decay %.3fs, sustain %.3f, release %.3fs",
		p.colorize(stage, stageColors[s.Stage]), bar, s.StageProgress, s.OutputValue,
		params.AttackValue, params.AttackTime, params.HoldTime, params.DecayTime,
		params.SustainValue, params.ReleaseTime)
}

func (p *printer) colorize(text string, color int) string {
	if !p.color {
		return text
	}
	return colorize(text, color)
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
