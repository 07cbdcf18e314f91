package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/posekit/smplx2anim/anim"
	"github.com/posekit/smplx2anim/config"
	"github.com/posekit/smplx2anim/gltfexport"
	"github.com/posekit/smplx2anim/npz"
	"github.com/posekit/smplx2anim/pose"
	"github.com/posekit/smplx2anim/skeleton"
	"github.com/posekit/smplx2anim/utils"
	"github.com/posekit/smplx2anim/web"
)

func parseBindRoot(s string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &v[0], &v[1], &v[2]); err != nil {
		return v, fmt.Errorf("bind root %q is not x,y,z: %v", s, err)
	}
	return v, nil
}

func main() {
	var input, output, settingsPath, bindRoot, listen string
	var fpsSource, fpsTarget int
	var startOrigin, dump bool
	flag.StringVar(&input, "input", "", "Directory with .npz pose files, one per source frame")
	flag.StringVar(&output, "output", "res.glb", "Output .glb path")
	flag.StringVar(&settingsPath, "settings", "", "Optional YAML settings file")
	flag.IntVar(&fpsSource, "fps-source", 30, "Source framerate")
	flag.IntVar(&fpsTarget, "fps-target", 30, "Target framerate (clamped to source)")
	flag.BoolVar(&startOrigin, "start-origin", true, "Start animation centered above origin")
	flag.StringVar(&bindRoot, "bind-root", "0,0,0", "Bind-pose root position as x,y,z")
	flag.BoolVar(&dump, "dump", false, "Dump the first output frame to stdout")
	flag.StringVar(&listen, "listen", "", "Serve the track on this address instead of writing the .glb")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		return
	}

	set := config.Default()
	if settingsPath != "" {
		var err error
		if set, err = config.LoadFile(settingsPath); err != nil {
			log.Fatal(err)
		}
	}
	// explicit flags win over the settings file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps-source":
			set.SourceRate = fpsSource
		case "fps-target":
			set.TargetRate = fpsTarget
		case "start-origin":
			set.CenterOnOrigin = startOrigin
		}
	})

	root, err := parseBindRoot(bindRoot)
	if err != nil {
		log.Fatal(err)
	}

	records, err := npz.LoadDirectory(input)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] Loaded %d source poses from %q", len(records), input)

	seq, err := pose.AssembleSequence(records)
	if err != nil {
		log.Fatal(err)
	}

	track, err := anim.Convert(seq, skeleton.Default(root), set)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] Converted %d frames at %d fps", len(track.Frames), track.FrameRate)

	if dump {
		utils.Dump(track.Frames[0])
	}

	if listen != "" {
		if err := web.StartServer(listen, track); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := gltfexport.SaveBinary(output, track); err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] Animation export finished: %q", output)
}
