package config

import (
	"flag"

	"github.com/hopworks/logostamp"
)

// withUpload with upload handling config option
func withUpload(fs *flag.FlagSet, cb Callback) logostamp.Option {
	var (
		uploadMaxAllowedSize = fs.Int("upload-max-allowed-size", 32<<20,
			"Maximum allowed size in bytes for uploaded images")
		uploadAccept = fs.String("upload-accept", "image/*",
			"Accepted Content-Type for uploads")
		uploadFormFieldName = fs.String("upload-form-field-name", "image",
			"Form field name for multipart uploads")
	)
	_, _ = cb()
	return func(app *logostamp.App) {
		upload := logostamp.NewUpload()
		upload.MaxAllowedSize = *uploadMaxAllowedSize
		upload.Accept = *uploadAccept
		upload.FormFieldName = *uploadFormFieldName
		upload.ParseAccept()
		logostamp.WithUpload(upload)(app)
	}
}
