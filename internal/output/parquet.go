package output

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/chrisdamba/foodinsights/internal/cloudwriter"
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetOutput keeps one writer per topic and partition. Files are named
// after the run so repeated exports into the same hour do not collide.
type ParquetOutput struct {
	basePath           string
	folder             string
	runID              string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

// CloudParquetFile adapts a CloudWriter to the write half of
// source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewParquetOutput(ctx context.Context, cfg models.OutputConfig) (*ParquetOutput, error) {
	p := newParquetOutput(cfg.Path, cfg.Folder)

	if cfg.Destination == "cloud" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = cfg.CloudStorage.BucketName
		log.Printf("Writing parquet reports to s3://%s/%s", p.cloudBucketName, p.folder)
	}
	return p, nil
}

// NewCloudParquetOutput writes objects through factory instead of the local
// filesystem.
func NewCloudParquetOutput(folder, bucket string, factory cloudwriter.CloudWriterFactory) *ParquetOutput {
	p := newParquetOutput("", folder)
	p.cloudWriterFactory = factory
	p.cloudBucketName = bucket
	return p
}

func newParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{
		basePath: basePath,
		folder:   folder,
		runID:    time.Now().UTC().Format("20060102T150405.000"),
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open and Create hand back the same file: the object is created by
// writing to it.
func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	schema, ok := parquetTopics[topic]
	if !ok {
		return fmt.Errorf("no parquet schema for topic %s", topic)
	}
	partitionPath, _, err := partition(msg)
	if err != nil {
		return err
	}
	row, err := schema.decode(msg)
	if err != nil {
		return fmt.Errorf("failed to decode %s row: %w", topic, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	writerKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, partitionPath, schema.model)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write %s row: %w", topic, err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(writerKey, topic, partitionPath string, model interface{}) (*writer.ParquetWriter, error) {
	fileName := fmt.Sprintf("part-%s.parquet", p.runID)

	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partitionPath, fileName)
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, partitionPath)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, fileName))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, model, 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

// Close flushes every writer and closes its file. For cloud files closing
// is what uploads the object.
func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
		delete(p.writers, key)
		delete(p.files, key)
	}
	return lastErr
}
