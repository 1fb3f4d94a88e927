// Package webapi exposes the analyzer as a JSON HTTP service.
//
// Endpoints:
//
//	POST /morpheme        {"text": "...", "top_k": 1}
//	POST /morpheme/batch  {"texts": ["..."], "top_k": 1}
//	POST /tokenize        {"text": "..."}
//	GET  /health
package webapi

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gonuts/commander"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"moran/nlp/analyzer"
	"moran/util"
	"moran/util/conf"
)

var (
	anl       *analyzer.Analyzer
	addr      string
	confFile  string
	modelFile string
	beamSize  int
	threads   int
)

type morphemeRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
	TopK  int      `json:"top_k"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Failed writing response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "moran",
	})
}

func MorphemeHandler(w http.ResponseWriter, r *http.Request) {
	var req morphemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errors.New("no text provided"))
		return
	}
	if req.TopK == 0 {
		req.TopK = 1
	}
	results, err := anl.Analyze(req.Text, req.TopK)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func BatchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %v", err))
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no texts provided"))
		return
	}
	if req.TopK == 0 {
		req.TopK = 1
	}
	results, err := anl.AnalyzeAll(req.Texts, req.TopK)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// TokenizeHandler returns the surface tokens of the single best
// segmentation.
func TokenizeHandler(w http.ResponseWriter, r *http.Request) {
	var req morphemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errors.New("no text provided"))
		return
	}
	results, err := anl.Analyze(req.Text, 1)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	tokens := make([]string, len(results[0].Tokens))
	for i, token := range results[0].Tokens {
		tokens[i] = token.Surface
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"count":  len(tokens),
	})
}

// Router builds the service routes around a loaded analyzer. Handlers
// share the analyzer without locking; Analyze keeps all mutable state
// call-local.
func Router(a *analyzer.Analyzer) http.Handler {
	anl = a
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", HealthHandler).Methods("GET")
	router.HandleFunc("/morpheme", MorphemeHandler).Methods("POST")
	router.HandleFunc("/morpheme/batch", BatchHandler).Methods("POST")
	router.HandleFunc("/tokenize", TokenizeHandler).Methods("POST")
	return cors.Default().Handler(router)
}

func Serve(cmd *commander.Command, args []string) error {
	opts := analyzer.DefaultOptions()
	opts.BeamSize = beamSize
	opts.NumThreads = threads
	if len(confFile) > 0 {
		config, err := conf.ReadFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("Failed reading config file - %v", err))
		}
		if config.Model != "" {
			modelFile = config.Model
		}
		if config.BeamSize > 0 {
			opts.BeamSize = config.BeamSize
		}
		if config.NumThreads > 0 {
			opts.NumThreads = config.NumThreads
		}
		if config.IntegrateAllomorphs != nil {
			opts.IntegrateAllomorphs = *config.IntegrateAllomorphs
		}
		opts.NormalizeNFC = config.NormalizeNFC
		if config.Addr != "" {
			addr = config.Addr
		}
	}
	if modelFile == "" {
		log.Println("Required flag m not set")
		cmd.Usage()
		os.Exit(1)
	}
	location, found := util.LocateFile(modelFile, []string{".", "data", "models"})
	if !found {
		panic(fmt.Sprintf("Model file not found: %v", modelFile))
	}
	log.Println("Found model file", location, " ... loading model")
	a, err := analyzer.New(location, opts)
	if err != nil {
		panic(fmt.Sprintf("Failed loading model - %v", err))
	}
	log.Println("Loaded", a.Lexicon().Len(), "lexicon entries")
	log.Println("Starting server, listening on", addr)
	return http.ListenAndServe(addr, Router(a))
}

func ApiCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Serve,
		UsageLine: "api <options> [arguments]",
		Short:     "start the analysis api server",
		Long: `
start the analysis api server

	$ ./moran api -m <model file> [-addr <host:port>|-conf <yaml file>]

`,
		Flag: *flag.NewFlagSet("api", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Compiled model file")
	cmd.Flag.StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flag.StringVar(&confFile, "conf", "", "YAML configuration file")
	cmd.Flag.IntVar(&beamSize, "b", analyzer.DefaultBeamSize, "Beam size")
	cmd.Flag.IntVar(&threads, "threads", 1, "Batch analysis workers")
	return cmd
}

func AllCommands() *commander.Command {
	return &commander.Command{
		UsageLine: os.Args[0] + " api [arguments]",
		Short:     "api server",
		Subcommands: []*commander.Command{
			ApiCmd(),
		},
	}
}
