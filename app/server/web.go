package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/oarkflow/cikmapper/export"
	"github.com/oarkflow/cikmapper/lookup"
	"github.com/oarkflow/cikmapper/mapper"
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/retriever"
)

// JSONError is json error massage
type JSONError struct {
	Error string `json:"error"`
}

// MappingInfo describes one mapping a variant serves
type MappingInfo struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// Entry is a single key looked up in a mapping
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func errorAPI(w http.ResponseWriter, message string, code int) {
	jsonMessage, err := json.Marshal(JSONError{Error: message})
	if err != nil {
		logrus.Warnf("error message create error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonMessage)
}

func writeJSON(w http.ResponseWriter, v any) {
	js, err := export.MarshalMapping(v)
	if err != nil {
		logrus.Warnf("json error: %v", err)
		errorAPI(w, "json error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// Server serves the mappings of already constructed mappers
type Server struct {
	mappers map[retriever.Variant]mapper.Mapper
	mux     *http.ServeMux
}

// New routes the API for mappers. With filesDir set, exported artifacts are
// also served under /files/.
func New(filesDir string, mappers ...mapper.Mapper) *Server {
	s := &Server{
		mappers: make(map[retriever.Variant]mapper.Mapper, len(mappers)),
		mux:     http.NewServeMux(),
	}
	for _, m := range mappers {
		s.mappers[m.Variant()] = m
	}
	if filesDir != "" {
		fs := http.FileServer(http.Dir(filesDir))
		s.mux.Handle("GET /files/", http.StripPrefix("/files/", fs))
	}
	s.mux.HandleFunc("GET /api/{variant}/mappings", s.MappingsAPIHandler)
	s.mux.HandleFunc("GET /api/{variant}/mappings/{name}", s.MappingAPIHandler)
	s.mux.HandleFunc("GET /api/{variant}/search", s.SearchAPIHandler)
	s.mux.HandleFunc("GET /api/{variant}/table.csv", s.TableAPIHandler)
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Index loads every served table into the search engine.
func (s *Server) Index() error {
	for v, m := range s.mappers {
		if err := lookup.Index(string(v), m.Table()); err != nil {
			return fmt.Errorf("indexing %s: %w", v, err)
		}
	}
	return nil
}

func (s *Server) mapper(w http.ResponseWriter, req *http.Request) (mapper.Mapper, bool) {
	v := retriever.Variant(req.PathValue("variant"))
	m, ok := s.mappers[v]
	if !ok {
		errorAPI(w, fmt.Sprintf("unknown variant: %s", v), http.StatusNotFound)
	}
	return m, ok
}

// MappingsAPIHandler lists the mappings of a variant,
// when path is "/api/{variant}/mappings"
func (s *Server) MappingsAPIHandler(w http.ResponseWriter, req *http.Request) {
	m, ok := s.mapper(w, req)
	if !ok {
		return
	}
	defs := m.Definitions()
	infos := make([]MappingInfo, 0, len(defs))
	for _, d := range defs {
		infos = append(infos, MappingInfo{Name: d.Name, Key: d.Key, Value: d.Value, Kind: d.Kind.String()})
	}
	writeJSON(w, infos)
}

// MappingAPIHandler returns a whole mapping, or the entry for ?key=,
// when path is "/api/{variant}/mappings/{name}"
func (s *Server) MappingAPIHandler(w http.ResponseWriter, req *http.Request) {
	m, ok := s.mapper(w, req)
	if !ok {
		return
	}
	name := req.PathValue("name")
	mp, err := m.Mapping(name)
	if errors.Is(err, mapper.ErrUnknownMapping) {
		errorAPI(w, fmt.Sprintf("unknown mapping: %s", name), http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.Warnf("mapping %s error: %v", name, err)
		errorAPI(w, fmt.Sprintf("mapping error: %v", err), http.StatusInternalServerError)
		return
	}

	key := req.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, mp)
		return
	}
	value := reflect.ValueOf(mp).MapIndex(reflect.ValueOf(key))
	if !value.IsValid() {
		errorAPI(w, fmt.Sprintf("%s not found in %s", key, name), http.StatusNotFound)
		return
	}
	writeJSON(w, Entry{Key: key, Value: mapping.Encodable(value.Interface())})
}

// SearchAPIHandler finds rows matching ?q=, optionally only in the
// comma separated ?in= columns, when path is "/api/{variant}/search"
func (s *Server) SearchAPIHandler(w http.ResponseWriter, req *http.Request) {
	m, ok := s.mapper(w, req)
	if !ok {
		return
	}
	q := req.URL.Query().Get("q")
	if q == "" {
		errorAPI(w, "bad parameter(q)", http.StatusBadRequest)
		return
	}
	var columns []string
	if in := req.URL.Query().Get("in"); in != "" {
		columns = strings.Split(in, ",")
	}
	result, err := lookup.Search(string(m.Variant()), q, columns...)
	if err != nil {
		logrus.Warnf("search error: %v", err)
		errorAPI(w, fmt.Sprintf("search error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// TableAPIHandler returns the variant's table as CSV,
// when path is "/api/{variant}/table.csv"
func (s *Server) TableAPIHandler(w http.ResponseWriter, req *http.Request) {
	m, ok := s.mapper(w, req)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := m.WriteCSV(&buf); err != nil {
		logrus.Warnf("csv error: %v", err)
		errorAPI(w, "csv error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write(buf.Bytes())
}

// Run starts webserver
func (s *Server) Run(addr string) error {
	logrus.Infof("server start on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}
