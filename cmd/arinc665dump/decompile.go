package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/arinc665/arinc665/decompiler"
	"github.com/arinc665/arinc665/fsio"
	"github.com/arinc665/arinc665/media"
)

func prettyPrint(v any) string {
	buf, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		log.Println("JSON marshal error: ", err)
		return fmt.Sprintf("%+v", v)
	}
	return string(buf)
}

// rootsFor assigns dirs[0] to medium 1, dirs[1] to medium 2, and so on, the
// order positional arguments are given in being the media order.
func rootsFor(dirs []string) ([]media.MediumNumber, map[media.MediumNumber]string) {
	order := make([]media.MediumNumber, len(dirs))
	roots := make(map[media.MediumNumber]string, len(dirs))
	for i, dir := range dirs {
		m := media.MediumNumber(i + 1)
		order[i] = m
		roots[m] = dir
	}
	return order, roots
}

func decompileDirs(dirs []string, checkIntegrity bool) (*decompiler.Result, error) {
	order, roots := rootsFor(dirs)
	backend := fsio.New(roots)
	return decompiler.Decompile(backend, order, decompiler.Options{CheckFileIntegrity: checkIntegrity})
}

func runDecompile(cmd *cobra.Command, args []string) {
	result, err := decompileDirs(args, false)
	if err != nil {
		log.Printf("decompile failed: %v", err)
		os.Exit(1)
	}
	fmt.Println(prettyPrint(summarize(result)))
}

func runVerify(cmd *cobra.Command, args []string) {
	result, err := decompileDirs(args, true)
	if err != nil {
		log.Printf("verification failed: %v", err)
		os.Exit(1)
	}
	fmt.Println(prettyPrint(summarize(result)))
}
