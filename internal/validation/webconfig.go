package validation

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/esstools/essready/internal/discovery"
)

// webConfigDoc is the subset of web.config the encryption routine inspects.
// An encrypted section carries a configProtectionProvider attribute in place
// of its plain content.
type webConfigDoc struct {
	XMLName           xml.Name          `xml:"configuration"`
	ConnectionStrings *protectedSection `xml:"connectionStrings"`
	AppSettings       *protectedSection `xml:"appSettings"`
}

type protectedSection struct {
	Provider string `xml:"configProtectionProvider,attr"`
}

// EncryptionRoutine inspects each instance's web.config for protected
// configuration sections. Clear-text connection strings are the finding the
// upgrade team cares about; encrypted sections are reported so the operator
// knows to re-encrypt after the upgrade rewrites the file.
type EncryptionRoutine struct{}

// NewEncryptionRoutine creates the web.config encryption routine.
func NewEncryptionRoutine() *EncryptionRoutine {
	return &EncryptionRoutine{}
}

// Name identifies the routine.
func (r *EncryptionRoutine) Name() string { return "webconfig-encryption" }

// Category is the record category.
func (r *EncryptionRoutine) Category() string { return "Configuration Encryption" }

// Run parses each instance's web.config and records its protection state.
func (r *EncryptionRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	for _, inst := range instances {
		if inst.PhysicalPath == "" {
			continue
		}
		id := inst.ID()
		path := filepath.Join(inst.PhysicalPath, "web.config")

		data, err := os.ReadFile(path)
		if err != nil {
			res.Warn(r.Category(), id, "web.config could not be read; encryption state unknown")
			continue
		}

		var doc webConfigDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			res.Warn(r.Category(), id, "web.config is not well-formed XML: "+err.Error())
			continue
		}

		if doc.ConnectionStrings == nil {
			res.Warn(r.Category(), id, "web.config has no connectionStrings section")
		} else if doc.ConnectionStrings.Provider == "" {
			res.Warn(r.Category(), id, "connection strings are stored in clear text")
		} else {
			res.Info(r.Category(), id,
				"connection strings encrypted with "+doc.ConnectionStrings.Provider+"; re-encrypt after upgrading")
		}

		if doc.AppSettings != nil && doc.AppSettings.Provider != "" {
			res.Info(r.Category(), id,
				"appSettings encrypted with "+doc.AppSettings.Provider+"; re-encrypt after upgrading")
		}
	}
	return nil
}
