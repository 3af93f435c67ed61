package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace  bool           // Stack trace'i response'da göster mi (sadece development)
	CustomErrorMap  map[int]string // Status code'a göre genel mesajlar
	EnablePanicLogs bool           // Panic stack trace'ini logla
	MaxErrorLength  int            // Error mesajının maksimum uzunluğu
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			400: "Geçersiz istek. Lütfen parametrelerinizi kontrol edin.",
			401: "Yetkilendirme gerekli. Lütfen giriş yapın.",
			403: "Bu işlem için yetkiniz bulunmuyor.",
			404: "Aradığınız kaynak bulunamadı.",
			429: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
			500: "Bir hata oluştu.",
		},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = false
	config.MaxErrorLength = 200
	return config
}

// ForEnv APP_ENV değerine göre config seçer
func ForEnv(env string) *ErrorConfig {
	if env == "development" {
		return DevelopmentErrorConfig()
	}
	return ProductionErrorConfig()
}
