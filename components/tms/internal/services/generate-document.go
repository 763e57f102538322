// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/artifact"
	"github.com/docstackhq/docstack/pkg/compose"
	"github.com/docstackhq/docstack/pkg/constant"
	"github.com/docstackhq/docstack/pkg/model"
	"github.com/docstackhq/docstack/pkg/placeholder"

	"github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
)

// idempotencyPending marks a generation that is still running under its key.
const idempotencyPending = "pending"

// GenerateDocument runs the full generation pipeline for a template: resolve
// the template and its source, compose embeds, inject values, convert to the
// requested export format and register the result in the artifact store.
//
// When the caller supplied an idempotency key, a completed generation under
// the same key is replayed instead of re-run; a generation still in flight
// under the key is a conflict. The replayed return reports which case served
// the response.
func (uc *UseCase) GenerateDocument(ctx context.Context, templateID uuid.UUID, input *model.GenerationInput) (resp *model.GenerationResponse, replayed bool, err error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.generate_document")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.template_id", templateID.String()),
		attribute.String("app.request.export_format", input.ExportFormat),
	)

	logger.Infof("Generating document for template %s", templateID)

	idempotencyKey, _ := ctx.Value(constant.IdempotencyKeyCtx).(string)

	if idempotencyKey != "" {
		cached, errIdem := uc.acquireIdempotencyKey(ctx, templateID, idempotencyKey)
		if errIdem != nil {
			return nil, false, errIdem
		}

		if cached != nil {
			logger.Infof("Replaying generation for idempotency key")

			return cached, true, nil
		}
	}

	resp, err = uc.runGeneration(ctx, templateID, input)
	if err != nil {
		if idempotencyKey != "" {
			uc.releaseIdempotencyKey(ctx, templateID, idempotencyKey)
		}

		return nil, false, err
	}

	if idempotencyKey != "" {
		uc.storeIdempotentResponse(ctx, templateID, idempotencyKey, resp)
	}

	return resp, false, nil
}

// runGeneration executes the pipeline itself and keeps the template's success
// and failure counters up to date.
func (uc *UseCase) runGeneration(ctx context.Context, templateID uuid.UUID, input *model.GenerationInput) (*model.GenerationResponse, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.generate_document.pipeline")
	defer span.End()

	templateModel, err := uc.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if templateModel.Lifecycle != model.LifecycleActive {
		return nil, pkg.ValidateBusinessError(constant.ErrTemplateInactive, reflect.TypeOf(model.Template{}).Name())
	}

	resp, err := uc.produceArtifact(ctx, templateModel, input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Generation pipeline failed", err)

		if errCounter := uc.TemplateRepo.IncrementCounter(ctx, templateID, model.CounterFailure); errCounter != nil {
			logger.Warnf("Failed to increment failure counter for template %s: %v", templateID, errCounter)
		}

		return nil, err
	}

	if errCounter := uc.TemplateRepo.IncrementCounter(ctx, templateID, model.CounterSuccess); errCounter != nil {
		logger.Warnf("Failed to increment success counter for template %s: %v", templateID, errCounter)
	}

	return resp, nil
}

// produceArtifact turns a resolved template plus inputs into a stored artifact.
func (uc *UseCase) produceArtifact(ctx context.Context, templateModel *model.Template, input *model.GenerationInput) (*model.GenerationResponse, error) {
	logger, _, reqId, _ := commons.NewTrackingFromContext(ctx)

	if err := validateValueKeys(templateModel, input, uc.StrictValues); err != nil {
		return nil, err
	}

	source, _, err := uc.CMSClient.DownloadContent(ctx, templateModel.DocumentID)
	if err != nil {
		logger.Errorf("Error downloading template source %s: %v", templateModel.DocumentID, err)

		return nil, err
	}

	embeds, err := uc.resolveEmbeds(ctx, input.Embeds)
	if err != nil {
		return nil, err
	}

	composed, err := uc.Composer.Compose(ctx, source, templateModel.FileName, embeds)
	if err != nil {
		return nil, err
	}

	injected, err := placeholder.Inject(composed, templateModel.FileName, input.Values)
	if err != nil {
		return nil, err
	}

	format := exportFormatFor(templateModel, input)

	output, err := uc.Converter.Export(ctx, injected, templateModel.FileName, format)
	if err != nil {
		return nil, err
	}

	baseName := strings.TrimSuffix(templateModel.FileName, filepath.Ext(templateModel.FileName))

	record, err := uc.ArtifactStore.Register(ctx, output.Data, artifact.Meta{
		FileName:     baseName + output.Extension,
		MimeType:     output.MimeType,
		ExportFormat: format,
		TemplateID:   templateModel.ID,
		CreatedBy:    reqId,
	})
	if err != nil {
		return nil, err
	}

	return &model.GenerationResponse{
		GenerationID:              record.ID,
		TemplateID:                record.TemplateID,
		FileName:                  record.FileName,
		FileSizeBytes:             record.Size,
		ExportFormat:              format,
		ExpiresAt:                 record.ExpiresAt,
		ProcessedPlaceholderCount: processedPlaceholderCount(templateModel, input),
		DownloadURL:               fmt.Sprintf("/v1/generations/%s/download", record.ID),
	}, nil
}

// resolveEmbeds loads each embedded template and its source document. Embed
// templates must exist and be active; any other state makes the whole
// generation fail before composition starts.
func (uc *UseCase) resolveEmbeds(ctx context.Context, inputs []model.EmbedInput) ([]compose.Embed, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	logger := commons.NewLoggerFromContext(ctx)

	embeds := make([]compose.Embed, 0, len(inputs))

	for _, in := range inputs {
		embedID, err := uuid.Parse(in.EmbedTemplateID)
		if err != nil {
			return nil, pkg.ValidateBusinessError(constant.ErrInvalidTemplateID, "", in.EmbedTemplateID)
		}

		embedTemplate, err := uc.TemplateRepo.FindByID(ctx, embedID)
		if err != nil {
			logger.Errorf("Error resolving embed template %s: %v", embedID, err)

			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, pkg.ValidateBusinessError(constant.ErrEmbedTemplateUnavailable, "", in.EmbedTemplateID)
			}

			return nil, err
		}

		if embedTemplate.Lifecycle != model.LifecycleActive {
			return nil, pkg.ValidateBusinessError(constant.ErrEmbedTemplateUnavailable, "", in.EmbedTemplateID)
		}

		source, _, err := uc.CMSClient.DownloadContent(ctx, embedTemplate.DocumentID)
		if err != nil {
			logger.Errorf("Error downloading embed source %s: %v", embedTemplate.DocumentID, err)

			return nil, pkg.ValidateBusinessError(constant.ErrEmbedTemplateUnavailable, "", in.EmbedTemplateID)
		}

		embeds = append(embeds, compose.Embed{
			TemplateID:  in.EmbedTemplateID,
			Placeholder: in.EmbedPlaceholder,
			FileName:    embedTemplate.FileName,
			Source:      source,
			Values:      in.EmbedTemplateValues,
		})
	}

	return embeds, nil
}

// validateValueKeys rejects value keys and embed placeholders that the parent
// template never declares, so typos fail loudly instead of rendering blanks.
// In strict mode every declared placeholder must also be covered by a value
// or an embed; uncovered ones fail the request instead of rendering empty.
func validateValueKeys(templateModel *model.Template, input *model.GenerationInput, strict bool) error {
	declared := make(map[string]bool, len(templateModel.Placeholders))
	for _, token := range templateModel.Placeholders {
		declared[token] = true
	}

	var unknown []string

	for key := range input.Values {
		if !declared[key] {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return pkg.ValidateBusinessError(constant.ErrUnknownPlaceholderValues, reflect.TypeOf(model.Template{}).Name(), strings.Join(unknown, ", "))
	}

	for _, embed := range input.Embeds {
		if !declared[embed.EmbedPlaceholder] {
			return pkg.ValidateBusinessError(constant.ErrEmbedPlaceholderUnknown, reflect.TypeOf(model.Template{}).Name(), embed.EmbedPlaceholder)
		}
	}

	if !strict {
		return nil
	}

	covered := make(map[string]bool, len(input.Values)+len(input.Embeds))

	for key := range input.Values {
		covered[key] = true
	}

	for _, embed := range input.Embeds {
		covered[embed.EmbedPlaceholder] = true
	}

	var missing []string

	for _, token := range templateModel.Placeholders {
		if !covered[token] {
			missing = append(missing, token)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return pkg.ValidateBusinessError(constant.ErrMissingRequiredFields, reflect.TypeOf(model.Template{}).Name(), strings.Join(missing, ", "))
	}

	return nil
}

// exportFormatFor picks the request format, falling back to the template's
// default and then to the original format.
func exportFormatFor(templateModel *model.Template, input *model.GenerationInput) string {
	if input.ExportFormat != "" {
		return pkg.NormalizeExportFormat(input.ExportFormat)
	}

	if templateModel.DefaultFormat != "" {
		return templateModel.DefaultFormat
	}

	return constant.FormatOriginal
}

// processedPlaceholderCount reports how many declared placeholders received a
// value or an embed in this request.
func processedPlaceholderCount(templateModel *model.Template, input *model.GenerationInput) int {
	filled := make(map[string]bool, len(input.Values)+len(input.Embeds))

	for _, token := range templateModel.Placeholders {
		if _, ok := input.Values[token]; ok {
			filled[token] = true
		}
	}

	for _, embed := range input.Embeds {
		filled[embed.EmbedPlaceholder] = true
	}

	return len(filled)
}

// acquireIdempotencyKey claims the key for this request. It returns a cached
// response when a previous generation already completed under the key, and a
// conflict error when one is still running.
func (uc *UseCase) acquireIdempotencyKey(ctx context.Context, templateID uuid.UUID, key string) (*model.GenerationResponse, error) {
	logger := commons.NewLoggerFromContext(ctx)

	redisKey := idempotencyRedisKey(templateID, key)

	acquired, err := uc.RedisRepo.SetNX(ctx, redisKey, idempotencyPending, constant.IdempotencyTTL)
	if err != nil {
		logger.Warnf("Idempotency store unavailable, proceeding without replay protection: %v", err)

		return nil, nil
	}

	if acquired {
		return nil, nil
	}

	stored, err := uc.RedisRepo.Get(ctx, redisKey)
	if err != nil || stored == idempotencyPending {
		return nil, pkg.ValidateBusinessError(constant.ErrIdempotencyKeyConflict, "generation")
	}

	// Key expired between SetNX and Get; run the generation normally.
	if stored == "" {
		return nil, nil
	}

	var cached model.GenerationResponse
	if err := json.Unmarshal([]byte(stored), &cached); err != nil {
		logger.Warnf("Failed to decode cached generation response: %v", err)

		return nil, pkg.ValidateBusinessError(constant.ErrIdempotencyKeyConflict, "generation")
	}

	return &cached, nil
}

// storeIdempotentResponse replaces the pending marker with the completed
// response so later requests under the key replay it.
func (uc *UseCase) storeIdempotentResponse(ctx context.Context, templateID uuid.UUID, key string, resp *model.GenerationResponse) {
	logger := commons.NewLoggerFromContext(ctx)

	encoded, err := json.Marshal(resp)
	if err != nil {
		logger.Warnf("Failed to encode generation response for idempotency cache: %v", err)

		return
	}

	if err := uc.RedisRepo.Set(ctx, idempotencyRedisKey(templateID, key), string(encoded), constant.IdempotencyTTL); err != nil {
		logger.Warnf("Failed to store generation response for idempotency cache: %v", err)
	}
}

// releaseIdempotencyKey frees the key after a failed generation so the caller
// can retry with the same key.
func (uc *UseCase) releaseIdempotencyKey(ctx context.Context, templateID uuid.UUID, key string) {
	logger := commons.NewLoggerFromContext(ctx)

	if err := uc.RedisRepo.Del(ctx, idempotencyRedisKey(templateID, key)); err != nil {
		logger.Warnf("Failed to release idempotency key: %v", err)
	}
}

func idempotencyRedisKey(templateID uuid.UUID, key string) string {
	return fmt.Sprintf("%s:%s:%s", constant.IdempotencyKeyPrefix, templateID, key)
}
