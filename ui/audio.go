package ui

import (
	"github.com/gordonklaus/portaudio"

	"nesgo/nes"
)

// Audio streams APU samples to the default output device. The channel
// buffers between the emulation and the audio callback; a bigger buffer
// means more latency.
type Audio struct {
	stream         *portaudio.Stream
	sampleRate     float64
	outputChannels int
	channel        chan float32
}

func NewAudio() *Audio {
	return &Audio{channel: make(chan float32, 8192)}
}

func (a *Audio) Start(console *nes.Console) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	api, err := portaudio.DefaultHostApi()
	if err != nil {
		return err
	}
	parameters := portaudio.HighLatencyParameters(nil, api.DefaultOutputDevice)
	stream, err := portaudio.OpenStream(parameters, a.callback)
	if err != nil {
		return err
	}
	a.stream = stream
	a.sampleRate = parameters.SampleRate
	a.outputChannels = parameters.Output.Channels

	console.SetAudioOutput(a.sampleRate, func(sample float32) {
		select {
		case a.channel <- sample:
		default:
		}
	})
	return stream.Start()
}

func (a *Audio) Stop() error {
	if a.stream == nil {
		return nil
	}
	err := a.stream.Close()
	portaudio.Terminate()
	return err
}

func (a *Audio) callback(out []float32) {
	var output float32
	for i := range out {
		if i%a.outputChannels == 0 {
			select {
			case sample := <-a.channel:
				output = sample
			default:
				output = 0
			}
		}
		out[i] = output
	}
}
