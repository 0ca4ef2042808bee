// Package audio plays the intro's procedural cues through oto. A player
// whose device could not be opened stays silent.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"
)

const channelCount = 2

type Options struct {
	Enabled    bool
	SampleRate int
	Volume     float64
	Logger     *zap.Logger
}

// Player owns the oto context. Play may be called from the frame goroutine;
// each cue plays on its own goroutine.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	rate   int
	log    *zap.Logger

	mu     sync.Mutex
	cache  map[Cue][]byte
	wg     sync.WaitGroup
	closed bool
}

// New opens the audio device. Failure is logged and yields a silent player.
func New(opts Options) *Player {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	p := &Player{
		volume: opts.Volume,
		rate:   opts.SampleRate,
		log:    opts.Logger.Named("audio"),
		cache:  make(map[Cue][]byte),
	}
	if !opts.Enabled || opts.SampleRate <= 0 {
		return p
	}
	ctx, ready, err := oto.NewContext(opts.SampleRate, channelCount, oto.FormatFloat32LE)
	if err != nil {
		p.log.Warn("audio unavailable", zap.Error(err))
		return p
	}
	p.ctx, p.ready = ctx, ready
	return p
}

// Silent reports whether cues are dropped.
func (p *Player) Silent() bool { return p.ctx == nil }

func (p *Player) samples(c Cue) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.cache[c]; ok {
		return b
	}
	b := Generate(c, p.rate)
	p.cache[c] = b
	return b
}

// Play starts c without blocking. Cues are dropped until the device is
// ready, after Close, and when the player is silent.
func (p *Player) Play(c Cue) {
	if p.ctx == nil || p.volume <= 0 {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	data := p.samples(c)
	go func() {
		defer p.wg.Done()
		player := p.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Debug("close player", zap.Error(err))
		}
	}()
	p.log.Debug("cue", zap.Stringer("cue", c))
}

// Close stops accepting cues and waits for the playing ones to finish.
func (p *Player) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
