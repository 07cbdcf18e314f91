// Package web serves a converted track for preview: metadata and
// frames as JSON, the full clip as a .glb download.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/posekit/smplx2anim/anim"
)

var serverTrack *anim.Track

func Router(track *anim.Track) http.Handler {
	serverTrack = track

	r := mux.NewRouter()
	r.HandleFunc("/json/track", HandlerTrack)
	r.HandleFunc("/json/track/info", HandlerTrackInfo)
	r.HandleFunc("/json/track/frame/{frame}", HandlerTrackFrame)
	r.HandleFunc("/dump/track.glb", HandlerDumpGlb)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)
	return h
}

func StartServer(addr string, track *anim.Track) error {
	log.Printf("[web] Starting server %v", addr)
	return http.ListenAndServe(addr, Router(track))
}
