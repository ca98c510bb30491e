package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"travmd-form/collector"
	"travmd-form/datemask"
	"travmd-form/document"
	"travmd-form/i18n"
	"travmd-form/images"
	"travmd-form/models"
	"travmd-form/payload"
	"travmd-form/pipeline"

	"github.com/google/uuid"
)

// ClientCookie identifies a browser for the stored language preference.
const ClientCookie = "travmdform_client"

func handleGenerate(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	start := time.Now()
	request, err := decodeGenerateRequest(w, r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_INVALID_REQUEST, err)
		return
	}
	format, err := state.resolveFormat(request.Format)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_UNKNOWN_FORMAT, ERR_UNKNOWN_FORMAT, err)
		return
	}

	result, err := pipeline.Generate(request.Form, pipeline.Options{Format: format, QR: state.qrOptions})
	if err != nil {
		respondWithErr(w, http.StatusUnprocessableEntity, ERR_GENERATE, ERR_GENERATE, err)
		return
	}

	response, err := toGenerateResponse(result)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_GENERATE, err)
		return
	}

	state.metrics.IncrementGeneration(string(format), len(response.Personal.Payload), len(response.Medical.Payload))
	state.metrics.ObserveRenderLatency("generate", time.Since(start))
	slog.Info("Generated QR codes", "format", format)

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

func toGenerateResponse(result *pipeline.Result) (models.GenerateResponse, error) {
	personal, err := images.ToDataURL(result.PersonalCode.Image)
	if err != nil {
		return models.GenerateResponse{}, err
	}
	medical, err := images.ToDataURL(result.MedicalCode.Image)
	if err != nil {
		return models.GenerateResponse{}, err
	}
	return models.GenerateResponse{
		Format:   string(result.Format),
		Personal: models.EncodedPayload{Payload: result.PersonalCode.Text, QrPng: personal},
		Medical:  models.EncodedPayload{Payload: result.MedicalCode.Text, QrPng: medical},
	}, nil
}

func handleDocument(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	start := time.Now()
	request, err := decodeGenerateRequest(w, r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_INVALID_REQUEST, err)
		return
	}
	format, err := state.resolveFormat(request.Format)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_UNKNOWN_FORMAT, ERR_UNKNOWN_FORMAT, err)
		return
	}
	lang := state.requestLanguage(r, request.Language)

	// The document is still produced when the codes cannot be rendered; its second page
	// is then left empty.
	result, err := pipeline.Generate(request.Form, pipeline.Options{Format: format, QR: state.qrOptions})
	if err != nil {
		slog.Warn("Rendering document without QR codes", "error", err)
		result = nil
	}

	pdf, err := pipeline.BuildDocument(request.Form, result, state.catalog.For(lang))
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_DOCUMENT, err)
		return
	}

	state.metrics.IncrementDocument()
	state.metrics.ObserveRenderLatency("document", time.Since(start))
	slog.Info("Rendered document", "lang", lang, "size", len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": document.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func handleDateMask(w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	var request models.DateMaskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_INVALID_REQUEST, err)
		return
	}

	masked := datemask.Mask(request.Value)
	response := models.DateMaskResponse{
		Value: masked,
		State: string(datemask.Validate(masked, time.Now().Year())),
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

func handleGetLanguage(state *ServerState, w http.ResponseWriter, r *http.Request) {
	lang, persisted := state.storedLanguage(r)
	if err := writeJSON(w, http.StatusOK, models.LanguageResponse{Lang: lang, Persisted: persisted}); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

func handleSetLanguage(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	var request models.LanguageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_INVALID_REQUEST, err)
		return
	}
	lang, err := i18n.Normalize(request.Lang)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_UNKNOWN_LANGUAGE, ERR_UNKNOWN_LANGUAGE, err)
		return
	}

	clientId := clientIdFromRequest(r)
	if clientId == "" {
		clientId = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     ClientCookie,
			Value:    clientId,
			Path:     "/",
			MaxAge:   int(Timeout.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	// A failed write only loses the preference; the switch itself still applies.
	persisted := true
	if err := state.languageStorage.StoreLanguage(clientId, lang); err != nil {
		slog.Warn("failed to store language preference", "error", err)
		state.metrics.IncrementLanguageStoreFailure("set")
		persisted = false
	}

	if err := writeJSON(w, http.StatusOK, models.LanguageResponse{Lang: lang, Persisted: persisted}); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

func handleTranslations(state *ServerState, w http.ResponseWriter, r *http.Request) {
	lang := state.defaultLanguage
	if requested := r.URL.Query().Get("lang"); requested != "" {
		normalized, err := i18n.Normalize(requested)
		if err != nil {
			respondWithErr(w, http.StatusBadRequest, ERR_UNKNOWN_LANGUAGE, ERR_UNKNOWN_LANGUAGE, err)
			return
		}
		lang = normalized
	} else {
		lang, _ = state.storedLanguage(r)
	}

	response := models.TranslationsResponse{
		Lang:    lang,
		Strings: state.catalog.Strings(lang),
	}
	for _, l := range i18n.Languages {
		response.Languages = append(response.Languages, models.LanguageInfo{Code: l.Code, Label: l.Label, Flag: l.Flag})
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

// handleReset holds no state to discard; it answers so the client clears its codes.
func handleReset(w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}
	response := models.ResetResponse{OK: true, MinDeparture: collector.MinDepartureDate(time.Now())}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

// request helpers ------------

// decodeGenerateRequest accepts either a JSON GenerateRequest or a urlencoded form post
// whose optional "format" and "lang" fields select the output.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (models.GenerateRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return models.GenerateRequest{}, fmt.Errorf("failed to parse form: %w", err)
		}
		values := r.PostForm
		request := models.GenerateRequest{
			Format:   values.Get("format"),
			Language: values.Get("lang"),
		}
		values.Del("format")
		values.Del("lang")
		request.Form = collector.SnapshotFromValues(values)
		return request, nil
	}

	var request models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return models.GenerateRequest{}, fmt.Errorf("failed to decode json: %w", err)
	}
	return request, nil
}

func (s *ServerState) resolveFormat(requested string) (payload.Format, error) {
	if requested == "" {
		return s.defaultFormat, nil
	}
	return payload.ParseFormat(requested)
}

// requestLanguage picks an explicit supported language, then the stored preference.
func (s *ServerState) requestLanguage(r *http.Request, requested string) string {
	if requested != "" {
		if lang, err := i18n.Normalize(requested); err == nil {
			return lang
		}
		slog.Debug("Ignoring unsupported language", "lang", requested)
	}
	lang, _ := s.storedLanguage(r)
	return lang
}

// storedLanguage returns the client's preference or the default. Storage failures are
// logged and otherwise ignored.
func (s *ServerState) storedLanguage(r *http.Request) (string, bool) {
	clientId := clientIdFromRequest(r)
	if clientId == "" {
		return s.defaultLanguage, false
	}
	lang, err := s.languageStorage.RetrieveLanguage(clientId)
	if err != nil {
		if !errors.Is(err, ErrLanguageNotFound) {
			slog.Warn("failed to read language preference", "error", err)
			s.metrics.IncrementLanguageStoreFailure("get")
		}
		return s.defaultLanguage, false
	}
	normalized, err := i18n.Normalize(lang)
	if err != nil {
		return s.defaultLanguage, false
	}
	return normalized, true
}

func clientIdFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(ClientCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}
