package main

import (
	"fmt"
	"log"
	"os"

	"github.com/theflywheel/tsdf"
)

func main() {
	// Clean up previous example.
	os.Remove("example.tsdf")

	f, err := os.OpenFile("example.tsdf", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		log.Fatalf("failed to open file: %v", err)
	}
	defer f.Close()

	format := tsdf.Binary
	headerLen, err := tsdf.WriteHeader(f, tsdf.Metadata{Version: "1", FileFormat: format})
	if err != nil {
		log.Fatalf("failed to write header: %v", err)
	}

	file := tsdf.NewOSFile(f)
	dict := tsdf.CreateAt[uint64, uint64](file, format, tsdf.Addr(headerLen), tsdf.ReadWrite, tsdf.Uint64KeyCodec{}, tsdf.Uint64Codec)

	fmt.Println("Dictionary opened successfully")

	for i := uint64(0); i < 10; i++ {
		if err := dict.Add(i, i*100); err != nil {
			log.Fatalf("failed to insert key %d: %v", i, err)
		}
	}

	fmt.Println("Inserted 10 key-value pairs")

	for i := uint64(0); i < 15; i += 2 {
		val, found, err := dict.Get(i)
		if err != nil {
			log.Fatalf("failed to get key %d: %v", i, err)
		}
		if found {
			fmt.Printf("Key %d => Value %d\n", i, val)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value.
	if err := dict.Add(2, 999); err != nil {
		log.Fatalf("failed to update key: %v", err)
	}

	if val, found, err := dict.Get(2); err != nil {
		log.Fatalf("failed to get key 2: %v", err)
	} else if found {
		fmt.Printf("Updated key 2 => Value %d\n", val)
	}

	fmt.Println("Example completed successfully")
}
