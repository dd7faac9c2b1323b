package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a zip/gzip/lz4 upload next to the original file and
// returns the extracted path, or "" when the file is not an archive.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackGzipArchive(filePath)
	case ".lz4":
		return unpackLZ4Archive(filePath)
	}
	return "", nil
}

func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	// The ensemble export is the largest file in the archive
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", nil
	}

	destPath := filepath.Join(filepath.Dir(filePath), largestFile.Name)
	os.MkdirAll(filepath.Dir(destPath), 0755)
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()
	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	if _, err = io.Copy(outFile, rc); err != nil {
		return "", err
	}

	if err = os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackGzipArchive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	gr, err := gzip.NewReader(file)
	if err != nil {
		return "", err
	}
	defer gr.Close()

	destPath := strings.TrimSuffix(filePath, ".gz")
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, gr); err != nil {
		return "", err
	}

	if err = os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackLZ4Archive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	destPath := strings.TrimSuffix(filePath, ".lz4")
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, lz4.NewReader(file)); err != nil {
		return "", err
	}

	if err = os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}
