package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreThenInspectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "record.txt")

	storeFormat, storeRoot, storeFields = "text", "widget", []string{
		"count:uint=7", "ratio:float=1.5", "label:char=hello there",
	}
	require.NoError(t, runStore([]string{out}))

	inspectFormat, jsonOut = "text", false
	output, err := captureOutput(t, func() error { return runInspect([]string{out}) })
	require.NoError(t, err)
	require.Contains(t, output, "count")
	require.Contains(t, output, "7")
	require.Contains(t, output, "label")
	require.Contains(t, output, "hello there")
}

func TestStoreThenLoadRestoresThroughDescriptors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "record.bin")

	storeFormat, storeRoot, storeFields = "binary", "widget", []string{"count:uint=42"}
	require.NoError(t, runStore([]string{out}))

	loadFormat, jsonOut = "binary", false
	output, err := captureOutput(t, func() error { return runLoad([]string{out}) })
	require.NoError(t, err)
	require.Contains(t, output, "count")
	require.Contains(t, output, "42")
}

func TestFindLocatesOneNode(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "record.json")

	storeFormat, storeRoot, storeFields = "json", "widget", []string{"count:uint=9"}
	require.NoError(t, runStore([]string{out}))

	findFormat, jsonOut = "json", false
	output, err := captureOutput(t, func() error { return runFind([]string{out, "widget.count"}) })
	require.NoError(t, err)
	require.Contains(t, output, "9")
}

func TestVerifyReportsNoDamageOnCleanStream(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "record.txt")

	storeFormat, storeRoot, storeFields = "text", "widget", []string{"count:uint=1"}
	require.NoError(t, runStore([]string{out}))

	verifyFormat, jsonOut = "text", false
	output, err := captureOutput(t, func() error { return runVerify([]string{out}) })
	require.NoError(t, err)
	require.Contains(t, output, "0 damaged")
}

func TestConvertTextToJSONPreservesNodes(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "record.txt")
	jsonPath := filepath.Join(dir, "record.json")

	storeFormat, storeRoot, storeFields = "text", "widget", []string{"count:uint=3", "ratio:float=2.5"}
	require.NoError(t, runStore([]string{textPath}))

	convertFrom, convertTo, jsonOut = "text", "json", false
	_, err := captureOutput(t, func() error { return runConvert([]string{textPath, jsonPath}) })
	require.NoError(t, err)

	inspectFormat = "json"
	output, err := captureOutput(t, func() error { return runInspect([]string{jsonPath}) })
	require.NoError(t, err)
	require.Contains(t, output, "count")
	require.Contains(t, output, "3")
}
