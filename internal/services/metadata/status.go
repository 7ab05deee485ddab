package metadata

import (
	"fmt"
	"path/filepath"
	"slices"

	"wazp-annotator/internal/models"
	"wazp-annotator/internal/roi"
)

// DiffStatus compares the ROIs in memory with the ROIs of a metadata file.
// Shapes are compared on their persisted fields, in order.
func DiffStatus(inMemory []models.Shape, onDisk []models.FileEntry, fileExists bool, metadataPath string) models.ROIStatus {
	name := filepath.Base(metadataPath)

	if !fileExists {
		return models.ROIStatus{
			Kind: models.ROIStatusNoFile,
			Alert: models.Alert{
				Message: fmt.Sprintf("Could not find %s", name),
				Color:   models.AlertDanger,
			},
		}
	}

	status := models.ROIStatus{FileROIs: len(onDisk)}
	switch {
	case len(inMemory) == 0 && len(onDisk) == 0:
		status.Kind = models.ROIStatusEmptyBoth
		status.Alert = models.Alert{Message: "No ROIs to save.", Color: models.AlertLight}
	case len(inMemory) == 0:
		status.Kind = models.ROIStatusFileOnly
		status.Alert = models.Alert{
			Message: fmt.Sprintf("Found %d ROIs in %s. Click 'Load' to display them.", len(onDisk), name),
			Color:   models.AlertInfo,
		}
	case entriesMatch(inMemory, onDisk):
		status.Kind = models.ROIStatusMatch
		status.Alert = models.Alert{
			Message: fmt.Sprintf("ROIs match %s", name),
			Color:   models.AlertSuccess,
		}
	default:
		status.Kind = models.ROIStatusUnsavedChanges
		status.Alert = models.Alert{Message: "Detected unsaved changes to ROIs.", Color: models.AlertWarning}
	}
	return status
}

func entriesMatch(inMemory []models.Shape, onDisk []models.FileEntry) bool {
	entries, err := roi.StorageShapesToFileEntries(inMemory)
	if err != nil {
		return false
	}
	return slices.Equal(entries, onDisk)
}

// FileButtons returns the enabled state of Save and Load. Save needs ROIs in
// memory and an existing metadata file; Load needs ROIs in the file.
func FileButtons(inMemory int, onDisk int, fileExists bool) models.Buttons {
	return models.Buttons{
		SaveDisabled: inMemory == 0 || !fileExists,
		LoadDisabled: onDisk == 0,
	}
}
