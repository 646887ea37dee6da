package pcm_test

import (
	"fmt"

	"github.com/cwbudde/algo-sfx/pcm"
)

func ExampleEncoder_Bytes() {
	enc, err := pcm.NewEncoder()
	if err != nil {
		fmt.Println(err)
		return
	}

	data, err := enc.Bytes(make([]float64, 100))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(data)-pcm.HeaderSize, string(data[:4]), string(data[8:12]))

	// Output:
	// 200 RIFF WAVE
}
