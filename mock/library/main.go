package main

import (
	_ "embed"
	"log"
	"net/http"
	"time"
)

//go:embed data.xml
var xmlData []byte

func main() {
	http.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (100-300ms)
		time.Sleep(time.Duration(100+time.Now().UnixNano()%200) * time.Millisecond)

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("X-Source", "library")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(xmlData); err != nil {
			log.Printf("[Library] Write error: %v", err)
		}

		log.Printf("[Library] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`<health><status>healthy</status></health>`)); err != nil {
			log.Printf("[Library] Health write error: %v", err)
		}
	})

	log.Println("Mock library source running on :8082")
	log.Fatal(http.ListenAndServe(":8082", nil))
}
