package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/edouard/tgbind/internal/config"
	"github.com/edouard/tgbind/telegram"
	"github.com/edouard/tgbind/telegram/inputfile"
)

// newS3Client is a package-level variable for testability.
var newS3Client = func(cfg config.S3) (inputfile.S3Getter, error) {
	awsCfg := aws.NewConfig()
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return s3.New(sess), nil
}

// fileArg turns a command-line file argument into a parameter value:
// s3://bucket/key streams from S3, anything else is left for the client to
// resolve as a local path, URL or file_id.
func (a *app) fileArg(arg string) (any, error) {
	bucket, key, ok := inputfile.ParseS3URI(arg)
	if !ok {
		if strings.HasPrefix(arg, "s3://") {
			return nil, fmt.Errorf("bad S3 location %q, want s3://bucket/key", arg)
		}
		return arg, nil
	}
	_, p, err := a.profile()
	if err != nil {
		return nil, err
	}
	client, err := newS3Client(p.S3)
	if err != nil {
		return nil, err
	}
	return inputfile.S3Object{Client: client, Bucket: bucket, Key: key}, nil
}

// parseParams reads name=value pairs. name:=value takes value as JSON.
// name=@file uploads file when it is a readable local file and otherwise sends
// it as is, so URLs and file_ids work too.
func (a *app) parseParams(args []string) (telegram.Params, error) {
	p := telegram.Params{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" || name == ":" {
			return nil, fmt.Errorf("bad parameter %q, want name=value", arg)
		}
		switch {
		case strings.HasSuffix(name, ":"):
			name = strings.TrimSuffix(name, ":")
			var v any
			if err := json.Unmarshal([]byte(value), &v); err != nil {
				return nil, fmt.Errorf("parameter %s: %w", name, err)
			}
			p[name] = v
		case strings.HasPrefix(value, "@"):
			f, err := a.fileArg(value[1:])
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", name, err)
			}
			if s, isString := f.(string); isString && inputfile.IsReadableFile(s) {
				f = inputfile.Path(s)
			}
			p[name] = f
		default:
			p[name] = value
		}
	}
	return p, nil
}
