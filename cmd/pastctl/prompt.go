package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNoInput = errors.New("no input")

// readLine prints label and reads one trimmed line.
func (e *appEnv) readLine(label string) (string, error) {
	fmt.Fprint(e.out, label)
	line, err := e.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptPassword implements access.Prompter over the terminal input. The
// password is read as typed; input is not hidden.
func (e *appEnv) PromptPassword(ctx context.Context, folderID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.readLine(fmt.Sprintf("Password for folder %d: ", folderID))
}
