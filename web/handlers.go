package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/posekit/smplx2anim/gltfexport"
	"github.com/posekit/smplx2anim/webutils"
)

type trackInfo struct {
	FirstFrame int `json:"first_frame"`
	FrameCount int `json:"frame_count"`
	FrameRate  int `json:"frame_rate"`
	JointCount int `json:"joint_count"`
}

func HandlerTrack(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverTrack)
}

func HandlerTrackInfo(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, &trackInfo{
		FirstFrame: serverTrack.FirstFrame,
		FrameCount: len(serverTrack.Frames),
		FrameRate:  serverTrack.FrameRate,
		JointCount: len(serverTrack.JointNames),
	})
}

func HandlerTrackFrame(w http.ResponseWriter, r *http.Request) {
	param := mux.Vars(r)["frame"]
	number, err := strconv.Atoi(param)
	if err != nil {
		webutils.WriteError(w, errors.Errorf("frame %q is not an integer", param))
		return
	}

	index := number - serverTrack.FirstFrame
	if index < 0 || index >= len(serverTrack.Frames) {
		webutils.WriteError(w, errors.Errorf("frame %d is out of range", number))
		return
	}
	webutils.WriteJson(w, &serverTrack.Frames[index])
}

func HandlerDumpGlb(w http.ResponseWriter, r *http.Request) {
	doc, err := gltfexport.BuildDocument(serverTrack)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := gltfexport.ExportBinary(&buf, doc); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, "track.glb")
}
