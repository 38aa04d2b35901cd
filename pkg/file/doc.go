// Package file provides envir stores kept in a single file, either on the
// local filesystem or as an object in Amazon S3 and S3-compatible services.
//
// Three encodings are supported: dotenv (via github.com/joho/godotenv), YAML
// (gopkg.in/yaml.v3) and JSON. The format is detected from the file extension
// unless set explicitly; anything that is not .yaml, .yml or .json is read as
// dotenv. YAML and JSON files must hold one flat mapping of scalars.
//
// # Usage
//
//	local, err := file.NewLocal(".env.production")
//	if err != nil {
//		return err
//	}
//	snapshot, err := local.Snapshot(ctx)
//	if err != nil {
//		return err
//	}
//	cfg, err := envir.From[Config](snapshot)
//
// Using S3:
//
//	remote, err := file.NewS3(ctx, file.S3Config{
//		Bucket: "configs",
//		Key:    "billing/prod.yaml",
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		return err
//	}
//	err = envir.ExportTo(ctx, remote, cfg)
//
// Apply merges the given entries into the existing contents, so keys written
// by other producers survive. Local writes go through a temporary file and a
// rename; S3 writes are a read-modify-write without cross-process locking.
//
// # Error Handling
//
// S3 errors are mapped to the package sentinels:
//   - NoSuchKey -> ErrFileNotFound
//   - NoSuchBucket -> ErrBucketNotFound
//   - AccessDenied -> ErrAccessDenied
//
// Decoding failures match ErrFailedToDecode and unknown formats match
// ErrUnsupportedFormat.
package file
