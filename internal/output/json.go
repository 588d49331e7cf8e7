package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONOutput appends one JSON document per line to
// <path>/<folder>/<topic>/<partition>/data.json.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	partitionPath, event, err := partition(msg)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := file.Write(append(jsonData, '\n')); err != nil {
		return err
	}
	return nil
}

func (j *JSONOutput) Close() error {
	var firstErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(j.files, key)
	}
	return firstErr
}
